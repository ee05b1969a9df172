// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package auth

import (
	"context"
	"time"

	"github.com/nexushost/api/internal/platform/sec"
)

// # User Data Access

// ListFilter narrows and pages the admin user listing.
type ListFilter struct {
	// Search matches case-insensitively against username, email,
	// first name, and last name.
	Search string

	// Role restricts results to a single role when non-empty.
	Role sec.UserRole

	// IsEmailVerified filters by verification state when non-nil.
	IsEmailVerified *bool

	// Limit and Offset page the result set. Callers are responsible for
	// clamping; the repository trusts these values.
	Limit  int
	Offset int
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByResetTokenHash returns the account holding an unexpired reset
		token with the given hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByResetTokenHash(context context.Context, tokenHash string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetResetToken stores the reset token hash and its expiry on the
		user row, replacing any outstanding token.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - tokenHash: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetResetToken(context context.Context, userID, tokenHash string, expiresAt time.Time) error

	/*
		UpdatePasswordAndClearResetToken atomically replaces the password
		hash and clears the reset-token pair in one statement, making the
		token single-use.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePasswordAndClearResetToken(context context.Context, userID, newHash string) error

	/*
		Delete permanently removes the account row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound when no row matched, or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		List returns a page of accounts matching the filter plus the total
		match count for pagination metadata.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*User: Page of hydrated entities, newest first
		  - int: Total number of matching rows
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*User, int, error)
}

// # Session Data Access

// SessionStore defines the contract for the volatile session registry.
//
// Sessions are pure key/value state: an opaque session ID mapping to a user
// ID with a rolling TTL. Everything else about the user is read from the
// relational store on every request.
type SessionStore interface {

	/*
		Create stores a new session for the user with the given TTL.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, sessionID, userID string, ttl time.Duration) error

	/*
		Get returns the user ID owning the session.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - string: UserID
		  - error: apperr.Unauthorized when the session is absent or expired
	*/
	Get(context context.Context, sessionID string) (string, error)

	/*
		Refresh extends the session's TTL (rolling expiry).

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Refresh(context context.Context, sessionID string, ttl time.Duration) error

	/*
		Delete removes the session, logging the user out of this browser.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionID string) error
}
