// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package post

import "context"

// Repository abstracts post persistence.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	ListAll(ctx context.Context) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
	ListByVisibility(ctx context.Context, visibility Visibility) ([]*Post, error)

	// SetVisibility finalizes a post's moderation state and returns the
	// post's author id so the caller can act on it. Returns a not-found
	// error when no post with the given id exists.
	SetVisibility(ctx context.Context, postID string, visibility Visibility) (authorID string, err error)
}

// AuthorDirectory is the slice of the account store the moderation flow
// needs: promoting a post's author after an approval.
type AuthorDirectory interface {
	PromoteToBlogger(ctx context.Context, userID string) error
}
