// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

// Package post implements the publishing workflow: submission, role-scoped
// listing, and admin moderation of posts.
package post

import "time"

// Visibility is a post's moderation state.
//
// A post starts as "requested" (unless its creator is an admin) and is
// finalized by moderation to "allowed" or "declined". Both final states are
// terminal: no further transition is exposed.
type Visibility string

const (
	VisibilityRequested Visibility = "requested"
	VisibilityAllowed   Visibility = "allowed"
	VisibilityDeclined  Visibility = "declined"
)

// Terminal reports whether v is a valid moderation target.
func (v Visibility) Terminal() bool {
	return v == VisibilityAllowed || v == VisibilityDeclined
}

// Post represents a submitted article.
//
// Title, Content, and AuthorID are immutable after creation; only
// Visibility changes, and only through moderation.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
	AuthorID   string     `json:"author_id"`
	Visibility Visibility `json:"visibility"`
}

// Global field names for validation
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldPostID  = "post_id"
	FieldAllowed = "allowed"
	FieldMessage = "message"
)
