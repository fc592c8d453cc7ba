// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/quillside/quillside/internal/platform/apperr"
	"github.com/quillside/quillside/internal/platform/ctxutil"
	"github.com/quillside/quillside/internal/platform/sec"
	"github.com/quillside/quillside/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns [validate.ErrInvalidJSON] if decoding fails, so handlers can pass
// the error straight to respond.Error.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Claims extracts the authenticated session claims from the request context.
//
// Returns nil if the request is anonymous.
func Claims(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
//
// Returns apperr.Unauthorized if the request is anonymous.
func RequiredClaims(request *http.Request) (*sec.SessionClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
