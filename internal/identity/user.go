// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

/*
Package identity implements the user account and authentication layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, and stateless session issuance.

# Architecture

This layer is the "Truth" of the system for who a caller is. Sessions are
stateless: the signed token carries the identity claims, and nothing is
recorded server-side when one is issued.
*/
package identity

import (
	"time"

	"github.com/quillside/quillside/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Quillside platform.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is a freshly issued stateless credential plus its owner.
//
// The token is handed to the transport layer, which delivers it as a
// cookie whose expiry mirrors [ExpiresAt].
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// # Field Identifiers

// Global field names for validation and identity mapping in the identity domain.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldMessage   = "message"
)
