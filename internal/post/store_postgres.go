// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package post

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/dberr"
)

const postTable = constants.SchemaContent + ".post"

// ═══════════════════════════════════════════════════════════
// PostgresRepository
// ═══════════════════════════════════════════════════════════

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const postColumns = `id, title, slug, content, createdat, authorid, visibility`

func (r *PostgresRepository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO ` + postTable + ` (id, title, slug, content, createdat, authorid, visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Timestamp, p.AuthorID, p.Visibility)
	return dberr.Wrap(err, "insert post")
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM ` + postTable + ` ORDER BY createdat DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list posts")
	}
	return scanPosts(rows)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM ` + postTable + ` WHERE authorid = $1 ORDER BY createdat DESC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list posts by author")
	}
	return scanPosts(rows)
}

func (r *PostgresRepository) ListByVisibility(ctx context.Context, visibility Visibility) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM ` + postTable + ` WHERE visibility = $1 ORDER BY createdat DESC`

	rows, err := r.pool.Query(ctx, query, visibility)
	if err != nil {
		return nil, dberr.Wrap(err, "list posts by visibility")
	}
	return scanPosts(rows)
}

func (r *PostgresRepository) SetVisibility(ctx context.Context, postID string, visibility Visibility) (string, error) {
	query := `
		UPDATE ` + postTable + `
		SET visibility = $2
		WHERE id = $1
		RETURNING authorid`

	var authorID string
	err := r.pool.QueryRow(ctx, query, postID, visibility).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFound("Post")
	}
	if err != nil {
		return "", dberr.Wrap(err, "update post visibility")
	}
	return authorID, nil
}

func scanPosts(rows pgx.Rows) ([]*Post, error) {
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Timestamp, &p.AuthorID, &p.Visibility); err != nil {
			return nil, dberr.Wrap(err, "scan post")
		}
		posts = append(posts, &p)
	}
	return posts, dberr.Wrap(rows.Err(), "iterate posts")
}
