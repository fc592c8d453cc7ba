// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/dberr"
	"github.com/quillside/quillside/internal/platform/sec"
)

const accountTable = constants.SchemaIdentity + ".account"

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record into the identity.account table.
//
// A unique-constraint violation on email surfaces as apperr.Conflict.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO ` + accountTable + ` (
			id, firstname, lastname, email, passwordhash, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "identity_repo_create")
	}

	return nil
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, role, createdat, updatedat
		FROM ` + accountTable + `
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "identity_repo_find_by_email")
	}

	return user, nil
}

// FindByID retrieves a user record by their primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, role, createdat, updatedat
		FROM ` + accountTable + `
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "identity_repo_find_by_id")
	}

	return user, nil
}

// List returns a page of accounts ordered by creation (UUIDv7 order) plus
// the total account count.
func (repository *PostgresUserRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, role, createdat, updatedat,
		       COUNT(*) OVER() AS total
		FROM ` + accountTable + `
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "identity_repo_list")
	}
	defer rows.Close()

	var users []*User
	total := 0

	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "identity_repo_list_scan")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "identity_repo_list_rows")
	}

	return users, total, nil
}

// PromoteToBlogger raises the account's role to BLOGGER.
//
// The predicate keeps the statement idempotent and race-safe: an ADMIN row
// never matches, so concurrent promotions cannot regress an administrator,
// and re-promoting a BLOGGER is a harmless no-op.
func (repository *PostgresUserRepository) PromoteToBlogger(ctx context.Context, userID string) error {
	const query = `
		UPDATE ` + accountTable + `
		SET role = $2, updatedat = now()
		WHERE id = $1 AND role <> $3`

	_, err := repository.pool.Exec(ctx, query, userID, sec.RoleBlogger, sec.RoleAdmin)
	if err != nil {
		return dberr.Wrap(err, "identity_repo_promote")
	}

	return nil
}
