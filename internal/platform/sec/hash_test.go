// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillside/quillside/internal/platform/sec"
)

/*
TestHashPassword verifies the hash round trip and that the plain text never
appears in the stored hash.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestCheckPasswordHash_InvalidHash verifies garbage stored hashes fail closed.
*/
func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}
