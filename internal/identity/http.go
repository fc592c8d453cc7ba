// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

/*
HTTP delivery layer for the identity domain.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Owns the session cookie lifecycle (set on register/login, cleared on logout).
  - Verification: Enforces strict input validation before passing to [Service].

Status codes on the auth surface are part of the public contract: 406 for a
caller who is already logged in, 404 for an unknown email, 401 for a bad
password, 409 for a duplicate registration, 422 for validation failures.
*/
package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/constants"
	"github.com/quillside/quillside/internal/platform/middleware"
	requestutil "github.com/quillside/quillside/internal/platform/request"
	"github.com/quillside/quillside/internal/platform/respond"
	"github.com/quillside/quillside/internal/platform/sec"
	"github.com/quillside/quillside/internal/platform/validate"
	"github.com/quillside/quillside/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements identity-related HTTP endpoints.
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// AuthRoutes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account and starts a session.
//   - POST /login    : Authenticates and starts a session.
//   - POST /logout   : Discards the session cookie.
//
// Register and login are anonymous-only (406 when a session cookie is
// already present). None of these routes sit behind [middleware.Authenticate],
// so a stale cookie can always be cleared via logout.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAnonymous)
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
	})

	router.Post("/logout", handler.logout)

	return router
}

// UserRoutes returns a [chi.Router] with the admin-only user directory.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.listUsers)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 200: Registered; session cookie set
  - 406: Caller is already logged in
  - 409: Email already registered
  - 422: Malformed email or failed validation
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.identityService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session)

	respond.OK(writer, map[string]string{
		FieldMessage: "User registered successfully",
	})
}

/*
login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: Logged in; session cookie set
  - 401: Wrong password
  - 404: Unknown email
  - 406: Caller is already logged in
  - 429: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.identityService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged in successfully",
	})
}

/*
logout discards the caller's session cookie.

POST /api/v1/auth/logout

Sessions are stateless, so there is nothing to revoke server-side — logout
is purely a cookie-clearing operation.

Response:
  - 200: Cookie cleared
  - 400: No session cookie present
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.BadRequest("No access token found"))
		return
	}

	clearSessionCookie(writer)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
listUsers returns the paginated account directory.

GET /api/v1/users?page=&limit=

Admin-only. Password hashes never serialize (JSON tags on the entity).

Response:
  - 200: Paginated user list
  - 401/403/498: Per the access-control gates
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.identityService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// # Cookie Management

// setSessionCookie delivers the session token to the client. Cookie expiry
// mirrors the token's own expiry claim.
func setSessionCookie(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie instructs the client to drop the session cookie.
func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
