// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package sec provides the security primitives shared across the platform.

It covers password hashing (bcrypt), one-way token hashing (SHA-256), secure
random token generation, HMAC cookie signing, and the role/account types that
middleware and handlers exchange through the request context.

Architecture:

  - Primitives only: no storage, no HTTP, no business rules.
  - Account: the sanitized user view attached to authenticated requests.
  - Everything here is safe to import from any layer without cycles.
*/
package sec

import "time"

// # Authenticated Identity

// Account is the sanitized view of a user record.
//
// It is what RequireAuth attaches to the request context and what every
// endpoint returns as a user payload. Credential and reset-token fields are
// not part of this type at all, so they can never leak into a response.
type Account struct {
	ID              string    `json:"id"`
	UUID            string    `json:"uuid"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Role            UserRole  `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
