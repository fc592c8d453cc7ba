// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillside/quillside/internal/identity"
	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
)

// newAuthRouter wires a handler around an empty in-memory repository.
func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*identity.User, error) {
			return nil, apperr.NotFound("User")
		},
		createFn: func(ctx context.Context, user *identity.User) error {
			return nil
		},
	}
	svc := identity.NewService(repo, newMockThrottle(), &mockIssuer{}, testLogger())
	return identity.NewHandler(svc).AuthRoutes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Register_Validation exercises the input contract: anything
malformed is a 422 before the service runs.
*/
func TestHandler_Register_Validation(t *testing.T) {
	router := newAuthRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed_json", `{"first_name": `},
		{"missing_fields", `{"email": "ada@quillside.app"}`},
		{"bad_email", `{"first_name":"Ada","last_name":"Lovelace","email":"not-an-email","password":"correcthorse"}`},
		{"short_password", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@quillside.app","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, router, "/register", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		})
	}
}

/*
TestHandler_Register_Success verifies the 200 + session cookie contract.
*/
func TestHandler_Register_Success(t *testing.T) {
	router := newAuthRouter(t)

	recorder := postJSON(t, router, "/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@quillside.app","password":"correcthorse"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "register must set the session cookie")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "User registered successfully", envelope.Data["message"])
}

/*
TestHandler_Register_AlreadyAuthenticated verifies the anonymous-only gate:
any present cookie means 406, regardless of its contents.
*/
func TestHandler_Register_AlreadyAuthenticated(t *testing.T) {
	router := newAuthRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace","email":"ada@quillside.app","password":"correcthorse"}`))
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "some-old-token"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotAcceptable, recorder.Code)
}

/*
TestHandler_Logout covers both sides of the cookie contract: 400 without a
session cookie, 200 plus an expired cookie with one.
*/
func TestHandler_Logout(t *testing.T) {
	router := newAuthRouter(t)

	t.Run("no_cookie", func(t *testing.T) {
		recorder := postJSON(t, router, "/logout", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("with_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/logout", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "any-token"})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var cleared *http.Cookie
		for _, cookie := range recorder.Result().Cookies() {
			if cookie.Name == constants.SessionCookieName {
				cleared = cookie
			}
		}
		require.NotNil(t, cleared, "logout must rewrite the session cookie")
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})
}
