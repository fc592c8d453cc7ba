// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// Roles are stored and transported as their uppercase string form. All
// privilege decisions go through [Role.AtLeast] — never compare role
// strings inline in handlers or services.
type Role string

const (
	// Unrestricted access: moderation, user listing, auto-approved posts
	RoleAdmin Role = "ADMIN"

	// Granted when a submitted post has been approved by an admin
	RoleBlogger Role = "BLOGGER"

	// Default role assigned at registration
	RoleUser Role = "USER"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleBlogger:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
