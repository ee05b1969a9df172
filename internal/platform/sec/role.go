// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to the admin surface
	RoleAdmin UserRole = "admin"

	// Paying customer with at least one active service
	RoleClient UserRole = "client"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// AllRoles lists every assignable role, used by input validation.
var AllRoles = []string{string(RoleUser), string(RoleClient), string(RoleAdmin)}

// IsAdmin reports whether the role grants access to admin-only endpoints.
//
// Authorization here is a flat check, not a hierarchy: a "client" is a billing
// state, not a privilege level above "user".
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role belongs to the closed role set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleUser:
		return true
	default:
		return false
	}
}
