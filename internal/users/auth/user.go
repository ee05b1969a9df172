// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

// Domain entity and field identifiers for the identity layer.

package auth

import (
	"time"

	"github.com/nexushost/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the NexusHost platform.
//
// Credential material (PasswordHash) and the reset-token pair are explicitly
// excluded from JSON. API payloads never serialize a User directly anyway;
// they go through [User.Account].
type User struct {
	ID              string       `json:"id"`
	UUID            string       `json:"uuid"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Username        string       `json:"username"`
	Email           string       `json:"email"`
	PasswordHash    string       `json:"-"`
	Role            sec.UserRole `json:"role"`
	IsEmailVerified bool         `json:"isEmailVerified"`

	// Reset token state lives on the user row: at most one outstanding
	// reset token per account, replaced wholesale on each request.
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Account returns the sanitized view of the user for API responses and
// request-context injection.
func (user *User) Account() *sec.Account {
	return &sec.Account{
		ID:              user.ID,
		UUID:            user.UUID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Username:        user.Username,
		Email:           user.Email,
		Role:            user.Role,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldToken       = "token"
	FieldNewPassword = "newPassword"
	FieldUser        = "user"
	FieldID          = "id"
)
