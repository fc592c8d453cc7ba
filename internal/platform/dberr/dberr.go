// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quillside/quillside/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failed operation and travels only in the
// server-side cause chain.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Resource")
	}

	// 2. Unique constraint violations become client-safe conflicts
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("Resource already exists")
	}

	// 3. Everything else is an upstream failure; the action context is kept
	//    for logging only.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
