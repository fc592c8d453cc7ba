// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package identity

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations must map storage errors to apperr values: an absent row is
// apperr.NotFound, a duplicate email is apperr.Conflict, anything else is an
// internal error whose details never reach the client.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new user account.
	Create(ctx context.Context, user *User) error

	// List returns a page of accounts plus the total count.
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// PromoteToBlogger raises the account's role to BLOGGER in a single
	// atomic statement. Accounts already at BLOGGER or above are left
	// untouched — in particular an ADMIN is never demoted, even when two
	// promotions race.
	PromoteToBlogger(ctx context.Context, userID string) error
}

// # Login Throttling

// LoginThrottle tracks consecutive failed password attempts per email.
//
// Counters are volatile and expire on their own; a throttle outage must not
// block logins (callers degrade open).
type LoginThrottle interface {
	// RecordFailure increments the failure counter and returns the new count.
	RecordFailure(ctx context.Context, email string) (int, error)

	// Failures returns the current failure count (0 if none recorded).
	Failures(ctx context.Context, email string) (int, error)

	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
