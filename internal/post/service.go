// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/sec"
	"github.com/quillside/quillside/internal/platform/validate"
	"github.com/quillside/quillside/pkg/slug"
	"github.com/quillside/quillside/pkg/uuidv7"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// ═══════════════════════════════════════════════════════════
// Service
// ═══════════════════════════════════════════════════════════

// Service implements the publishing workflow business logic.
type Service struct {
	postRepository Repository
	authors        AuthorDirectory
	logger         *slog.Logger
}

func NewService(postRepo Repository, authors AuthorDirectory, logger *slog.Logger) *Service {
	return &Service{
		postRepository: postRepo,
		authors:        authors,
		logger:         logger,
	}
}

// CreateInput carries the author-supplied fields of a new post.
type CreateInput struct {
	Title   string
	Content string
}

// Create submits a new post on behalf of the authenticated author.
//
// Posts created by an admin are published immediately; everyone else's
// submissions start in the moderation queue.
func (s *Service) Create(ctx context.Context, claims *sec.SessionClaims, input CreateInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, maxTitleLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, maxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	visibility := VisibilityRequested
	if claims.Role.AtLeast(sec.RoleAdmin) {
		visibility = VisibilityAllowed
	}

	p := &Post{
		ID:         uuidv7.New(),
		Title:      input.Title,
		Slug:       slug.From(input.Title),
		Content:    input.Content,
		Timestamp:  time.Now().UTC(),
		AuthorID:   claims.UserID,
		Visibility: visibility,
	}

	if err := s.postRepository.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListVisible returns the posts the caller is allowed to see.
//
// Admins see everything, bloggers see their own submissions in every
// state, and everyone else (including anonymous visitors) sees only
// published posts.
func (s *Service) ListVisible(ctx context.Context, claims *sec.SessionClaims) ([]*Post, error) {
	switch {
	case claims == nil:
		return s.postRepository.ListByVisibility(ctx, VisibilityAllowed)
	case claims.Role.AtLeast(sec.RoleAdmin):
		return s.postRepository.ListAll(ctx)
	case claims.Role.AtLeast(sec.RoleBlogger):
		return s.postRepository.ListByAuthor(ctx, claims.UserID)
	default:
		return s.postRepository.ListByVisibility(ctx, VisibilityAllowed)
	}
}

// ModerationQueue returns all posts awaiting a verdict.
func (s *Service) ModerationQueue(ctx context.Context) ([]*Post, error) {
	return s.postRepository.ListByVisibility(ctx, VisibilityRequested)
}

// Moderate finalizes a pending post. Approving a post additionally
// promotes its author to blogger; the promotion never demotes an admin.
//
// If the visibility update lands but the promotion fails, the error is
// logged with the partial state and surfaced as an internal error so the
// operator can reconcile.
func (s *Service) Moderate(ctx context.Context, postID string, target Visibility) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldPostID, postID).
		UUID(FieldPostID, postID).
		Custom(FieldAllowed, !target.Terminal(), "Must resolve to a final state")
	if err := validator.Err(); err != nil {
		return err
	}

	authorID, err := s.postRepository.SetVisibility(ctx, postID, target)
	if err != nil {
		return err
	}

	if target != VisibilityAllowed {
		return nil
	}

	if err := s.authors.PromoteToBlogger(ctx, authorID); err != nil {
		s.logger.Error("post approved but author promotion failed",
			"post_id", postID,
			"author_id", authorID,
			"visibility_updated", true,
			"error", err)
		return apperr.Internal(fmt.Errorf("promote author %s after approving post %s: %w", authorID, postID, err))
	}
	return nil
}
