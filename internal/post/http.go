// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillside/quillside/internal/platform/middleware"
	requestutil "github.com/quillside/quillside/internal/platform/request"
	"github.com/quillside/quillside/internal/platform/respond"
	"github.com/quillside/quillside/internal/platform/sec"
)

// ═══════════════════════════════════════════════════════════
// Handler
// ═══════════════════════════════════════════════════════════

type Handler struct {
	postService *Service
}

func NewHandler(postService *Service) *Handler {
	return &Handler{postService: postService}
}

// # Routes
//
// Returns the post router. Listing is open to everyone (visibility is
// scoped by the caller's session), creation requires a session, and the
// moderation endpoints require an admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/moderation", handler.moderationQueue)
		r.Post("/moderation", handler.moderate)
	})

	return router
}

// ═══════════════════════════════════════════════════════════
// Request payloads
// ═══════════════════════════════════════════════════════════

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// moderateRequest carries a moderation verdict. The target state arrives
// as the visibility string itself ("allowed" or "declined"); anything else
// fails validation.
type moderateRequest struct {
	PostID  string `json:"post_id"`
	Allowed string `json:"allowed"`
}

// ═══════════════════════════════════════════════════════════
// Handlers
// ═══════════════════════════════════════════════════════════

// # Create Post
//
//	POST /api/v1/posts
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.postService.Create(request.Context(), claims, CreateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, created)
}

// # List Posts
//
//	GET /api/v1/posts
//
// Responds 204 when the caller's view of the catalog is empty.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.postService.ListVisible(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(posts) == 0 {
		respond.NoContent(writer)
		return
	}

	respond.OK(writer, posts)
}

// # Moderation Queue
//
//	GET /api/v1/posts/moderation
func (handler *Handler) moderationQueue(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.postService.ModerationQueue(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(posts) == 0 {
		respond.NoContent(writer)
		return
	}

	respond.OK(writer, posts)
}

// # Moderate Post
//
//	POST /api/v1/posts/moderation
func (handler *Handler) moderate(writer http.ResponseWriter, request *http.Request) {
	var input moderateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Moderate(request.Context(), input.PostID, Visibility(input.Allowed)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Post status updated successfully",
	})
}
