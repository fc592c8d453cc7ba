// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillside/quillside/internal/platform/sec"
)

const testIssuer = "quillside.test"

func newTestService(t *testing.T) *sec.TokenService {
	t.Helper()
	svc, err := sec.NewTokenService([]byte("unit-test-secret-key"), testIssuer, time.Hour)
	require.NoError(t, err)
	return svc
}

/*
TestTokenService_RequiresSecret verifies that the service refuses to start
without a signing secret.
*/
func TestTokenService_RequiresSecret(t *testing.T) {
	_, err := sec.NewTokenService(nil, testIssuer, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService([]byte{}, testIssuer, time.Hour)
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies that issued tokens carry the identity
claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Issue("user-1", "ada@quillside.app", sec.RoleBlogger)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@quillside.app", claims.Email)
	assert.Equal(t, sec.RoleBlogger, claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_VerifyFailures covers the attacker-facing failure modes.
Every malformed or forged input must produce an error, never a panic.
*/
func TestTokenService_VerifyFailures(t *testing.T) {
	svc := newTestService(t)

	valid, err := svc.Issue("user-1", "ada@quillside.app", sec.RoleUser)
	require.NoError(t, err)

	// Token signed with a different secret.
	otherSvc, err := sec.NewTokenService([]byte("a-different-secret"), testIssuer, time.Hour)
	require.NoError(t, err)
	foreign, err := otherSvc.Issue("user-1", "ada@quillside.app", sec.RoleUser)
	require.NoError(t, err)

	// Token signed with alg=none must be rejected by the method check.
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-at-all"},
		{"two_segments", parts[0] + "." + parts[1]},
		{"tampered_signature", tampered},
		{"wrong_secret", foreign},
		{"alg_none", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.VerifyToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

/*
TestTokenService_Expired verifies expired tokens fail verification.
*/
func TestTokenService_Expired(t *testing.T) {
	svc, err := sec.NewTokenService([]byte("unit-test-secret-key"), testIssuer, -time.Minute)
	require.NoError(t, err)

	token, err := svc.Issue("user-1", "ada@quillside.app", sec.RoleUser)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
