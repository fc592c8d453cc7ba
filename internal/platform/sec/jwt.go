// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([TokenIssuer], middleware.TokenVerifier).
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the UserID, Email, and Role directly inside the token,
// access control can reconstruct the caller's identity and privilege
// WITHOUT querying the database on every single API request. Verification
// is a pure function of the token and the shared secret.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID string `json:"uid"`
	Email  string `json:"eml"`
	Role   Role   `json:"rol"`
}

// TokenService issues and verifies HS256-signed session tokens.
//
// # Statelessness
//
// Issued tokens have no server-side record. This trades revocability for
// zero lookup cost and horizontal scalability; invalidation requires
// secret rotation or client-side cookie discard.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService around an injected shared secret.
//
// The secret arrives from process configuration at startup and is never
// persisted or logged by this package.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("sec: token signing secret must not be empty")
	}

	return &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed session token embedding the given identity claims.
//
// Expiry mirrors the session cookie lifetime, so a stolen token outlives
// the cookie by at most zero seconds.
func (service *TokenService) Issue(userID, email string, role Role) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string.
//
// Every failure mode — malformed input, signature mismatch, unexpected
// signing algorithm, expiry — collapses into a single error outcome.
// Attacker-controlled input can never cause a panic here.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
