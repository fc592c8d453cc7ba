// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/ctxutil"
	"github.com/quillside/quillside/internal/platform/middleware"
	"github.com/quillside/quillside/internal/platform/sec"
)

// stubVerifier lets each test decide the verification outcome.
type stubVerifier struct {
	claims *sec.SessionClaims
	err    error
}

func (s *stubVerifier) VerifyToken(tokenStr string) (*sec.SessionClaims, error) {
	return s.claims, s.err
}

// okHandler records whether the inner handler was reached.
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

func withSessionCookie(r *http.Request, value string) *http.Request {
	r.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: value})
	return r
}

/*
TestAuthenticate_NoCookie verifies the anonymous path: without a cookie
the request proceeds and no claims are injected.
*/
func TestAuthenticate_NoCookie(t *testing.T) {
	reached := false
	var seenClaims *sec.SessionClaims

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seenClaims = ctxutil.GetAuthUser(r.Context())
	})

	handler := middleware.Authenticate(&stubVerifier{err: errors.New("never called")})(inner)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.True(t, reached)
	assert.Nil(t, seenClaims)
}

/*
TestAuthenticate_InvalidToken verifies that an unverifiable cookie is
terminal: 498, and the inner handler never runs.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	reached := false
	handler := middleware.Authenticate(&stubVerifier{err: errors.New("signature mismatch")})(okHandler(&reached))

	recorder := httptest.NewRecorder()
	request := withSessionCookie(httptest.NewRequest(http.MethodGet, "/posts", nil), "tampered")
	handler.ServeHTTP(recorder, request)

	assert.False(t, reached)
	assert.Equal(t, apperr.StatusInvalidToken, recorder.Code)
}

/*
TestAuthenticate_ValidToken verifies claims injection on success.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	expected := &sec.SessionClaims{UserID: "user-1", Role: sec.RoleBlogger}
	var seenClaims *sec.SessionClaims

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenClaims = ctxutil.GetAuthUser(r.Context())
	})

	handler := middleware.Authenticate(&stubVerifier{claims: expected})(inner)

	recorder := httptest.NewRecorder()
	request := withSessionCookie(httptest.NewRequest(http.MethodGet, "/posts", nil), "valid-token")
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seenClaims)
	assert.Equal(t, "user-1", seenClaims.UserID)
}

/*
TestRequireAuth verifies the authenticated-only gate.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		reached := false
		handler := middleware.RequireAuth(okHandler(&reached))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/posts", nil))

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		reached := false
		handler := middleware.RequireAuth(okHandler(&reached))

		request := httptest.NewRequest(http.MethodPost, "/posts", nil)
		ctx := ctxutil.WithAuthUser(request.Context(), &sec.SessionClaims{UserID: "user-1", Role: sec.RoleUser})

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request.WithContext(ctx))

		assert.True(t, reached)
	})
}

/*
TestRequireRole verifies the privilege gate distinguishes missing identity
(401) from insufficient privilege (403).
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		claims       *sec.SessionClaims
		expectedCode int
		shouldReach  bool
	}{
		{"anonymous", nil, http.StatusUnauthorized, false},
		{"user_forbidden", &sec.SessionClaims{Role: sec.RoleUser}, http.StatusForbidden, false},
		{"blogger_forbidden", &sec.SessionClaims{Role: sec.RoleBlogger}, http.StatusForbidden, false},
		{"admin_allowed", &sec.SessionClaims{Role: sec.RoleAdmin}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.RequireRole(sec.RoleAdmin)(okHandler(&reached))

			request := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedCode, recorder.Code)
			assert.Equal(t, tt.shouldReach, reached)
		})
	}
}

/*
TestRequireAnonymous verifies anonymous-only routes reject any present
cookie, valid or not, with 406.
*/
func TestRequireAnonymous(t *testing.T) {
	t.Run("cookie_present_rejected", func(t *testing.T) {
		reached := false
		handler := middleware.RequireAnonymous(okHandler(&reached))

		recorder := httptest.NewRecorder()
		request := withSessionCookie(httptest.NewRequest(http.MethodPost, "/auth/register", nil), "whatever")
		handler.ServeHTTP(recorder, request)

		assert.False(t, reached)
		assert.Equal(t, http.StatusNotAcceptable, recorder.Code)
	})

	t.Run("no_cookie_passes", func(t *testing.T) {
		reached := false
		handler := middleware.RequireAnonymous(okHandler(&reached))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/register", nil))

		assert.True(t, reached)
	})
}
