// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package middleware

import (
	"net/http"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/ctxutil"
	"github.com/quillside/quillside/internal/platform/respond"
	"github.com/quillside/quillside/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject stubs during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the session token from the request cookie.
//
// Every request passing through is classified into exactly one verdict:
//
//  1. No cookie — the request proceeds as anonymous (downstream gates decide
//     whether that is acceptable).
//  2. Cookie present, verification succeeds — [*sec.SessionClaims] is
//     injected into the request context.
//  3. Cookie present, verification fails — the request terminates
//     immediately with 498; no handler runs.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				respond.Error(writer, request, apperr.InvalidCredential())
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context (implies AuthN) — 401 if not.
//  2. Check if the user's role meets or exceeds the target via [sec.Role.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Access token not found"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !claims.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("User is not authorized"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAnonymous blocks requests that already carry a session cookie.
//
// Register and login are anonymous-only: a logged-in caller gets 406 no
// matter what their token decodes to. The check is on cookie presence, not
// validity — these routes sit outside [Authenticate], so a stale or
// tampered cookie still yields 406 rather than 498.
func RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
			respond.Error(writer, request, apperr.AlreadyAuthenticated())
			return
		}
		next.ServeHTTP(writer, request)
	})
}
