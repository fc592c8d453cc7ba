// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/sec"
	"github.com/quillside/quillside/pkg/pagination"
	"github.com/quillside/quillside/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting signed session tokens.
type TokenIssuer interface {
	// Issue creates a signed, tamper-evident token embedding the identity claims.
	Issue(userID, email string, role sec.Role) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	loginThrottle  LoginThrottle
	tokenIssuer    TokenIssuer
	logger         *slog.Logger
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(userRepo UserRepository, throttle LoginThrottle, issuer TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		loginThrottle:  throttle,
		tokenIssuer:    issuer,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register validates, hashes, and persists a brand new user account, then
// issues a session for it so registration doubles as a login.
//
// New accounts always start at the baseline USER role; the only path to
// BLOGGER runs through post moderation.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// Verify email uniqueness. Return a client-safe Conflict err. Only a
	// NotFound means the email is free; any other lookup failure is a real
	// store error and must not fall through to the insert.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if ae := apperr.As(err); ae == nil || ae.HTTPStatus != http.StatusNotFound {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := service.issueSession(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return session, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates user credentials and issues a session token.
//
// Contract: an unknown email is a NotFound, a wrong password an
// Unauthorized. Repeated password failures for one email are throttled via
// the volatile counter; a throttle outage degrades open so authentication
// never depends on Redis availability.
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {

	// Check the failure counter before touching the database.
	failures, err := service.loginThrottle.Failures(ctx, input.Email)
	if err != nil {
		service.logger.Warn("login_throttle_unavailable", slog.Any("error", err))
	} else if failures >= constants.MaxLoginFailures {
		return nil, apperr.RateLimited(int(constants.LoginFailureWindow / time.Second))
	}

	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		if _, terr := service.loginThrottle.RecordFailure(ctx, input.Email); terr != nil {
			service.logger.Warn("login_throttle_unavailable", slog.Any("error", terr))
		}
		return nil, apperr.Unauthorized("Wrong email and password combination")
	}

	if err := service.loginThrottle.Reset(ctx, input.Email); err != nil {
		service.logger.Warn("login_throttle_unavailable", slog.Any("error", err))
	}

	session, err := service.issueSession(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// # Directory

// ListUsers returns a page of all registered accounts plus the total count.
//
// Authorization (admin-only) is enforced at the transport layer; password
// hashes never serialize thanks to the entity's JSON tags.
func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]*User, int, error) {
	return service.userRepository.List(ctx, params.Limit, params.Offset())
}

// issueSession mints a signed token for the user.
//
// Sessions are stateless by design: nothing is persisted here, so the only
// invalidation paths are cookie discard and signing-secret rotation.
func (service *Service) issueSession(user *User) (*Session, error) {
	token, err := service.tokenIssuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_issue_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(constants.SessionTokenTTL),
		User:      user,
	}, nil
}
