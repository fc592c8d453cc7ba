// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillside/quillside/internal/platform/sec"
)

/*
TestRole_AtLeast exercises the full privilege lattice.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.Role
		target   sec.Role
		expected bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_blogger", sec.RoleAdmin, sec.RoleBlogger, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"blogger_meets_blogger", sec.RoleBlogger, sec.RoleBlogger, true},
		{"blogger_meets_user", sec.RoleBlogger, sec.RoleUser, true},
		{"blogger_below_admin", sec.RoleBlogger, sec.RoleAdmin, false},
		{"user_below_blogger", sec.RoleUser, sec.RoleBlogger, false},
		{"user_below_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"unknown_below_user", sec.Role("WIZARD"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestRole_Valid verifies that only the three known roles validate.
*/
func TestRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleAdmin.Valid())
	assert.True(t, sec.RoleBlogger.Valid())
	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.Role("").Valid())
	assert.False(t, sec.Role("admin").Valid()) // case-sensitive on purpose
}
