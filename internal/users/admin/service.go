// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package admin implements the administrative user-management surface.

It lets operators list, inspect, create, update, and remove any account on
the platform, including promoting accounts to other roles.

# Architecture

The package owns no storage of its own: it drives the same [auth.UserRepository]
the identity layer uses, so every invariant (unique email/username, hashed
passwords) holds no matter which surface touches an account.
*/
package admin

import (
	"context"
	"fmt"

	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/internal/users/auth"
	"github.com/nexushost/api/pkg/pointer"
	"github.com/nexushost/api/pkg/uuid"
)

// # Definitions & Constructors

// Service implements administrative user-management use cases.
type Service struct {
	userRepository auth.UserRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

// # Listing & Retrieval

/*
List returns a page of accounts with the total match count.

Description: Backs the admin user table: free-text search, role and
verification filters, newest accounts first.

Parameters:
  - context: context.Context
  - filter: auth.ListFilter (pre-clamped by the HTTP layer)

Returns:
  - []*sec.Account: Sanitized page
  - int: Total matching accounts
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter auth.ListFilter) ([]*sec.Account, int, error) {
	users, total, err := service.userRepository.List(context, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("admin_service_list_failed: %w", err)
	}

	// Never hand raw entities to the transport layer
	accounts := make([]*sec.Account, 0, len(users))
	for _, user := range users {
		accounts = append(accounts, user.Account())
	}

	return accounts, total, nil
}

/*
Get returns a single account by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *sec.Account: Sanitized account
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*sec.Account, error) {
	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	return user.Account(), nil
}

// # Account Creation

// CreateInput holds the data for an admin-created account.
//
// Unlike self-registration, admins may assign any role and pre-verify the
// email address.
type CreateInput struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	Role            sec.UserRole
	IsEmailVerified bool
}

/*
Create provisions a new account on behalf of an operator.

Description: Same uniqueness and hashing rules as self-registration, plus
role assignment.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *sec.Account: Created account
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*sec.Account, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email already exists")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	user := &auth.User{
		ID:              uuid.New(),
		UUID:            uuid.NewV4(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Username:        input.Username,
		Email:           input.Email,
		PasswordHash:    hashedPassword,
		Role:            input.Role,
		IsEmailVerified: input.IsEmailVerified,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user.Account(), nil
}

// # Account Mutation

// UpdateInput holds the partial update for an account.
//
// Nil fields are left untouched; an input with every field nil is rejected.
type UpdateInput struct {
	FirstName       *string
	LastName        *string
	Username        *string
	Email           *string
	Role            *sec.UserRole
	IsEmailVerified *bool
}

// isEmpty reports whether the input carries no changes at all.
func (input UpdateInput) isEmpty() bool {
	return input.FirstName == nil &&
		input.LastName == nil &&
		input.Username == nil &&
		input.Email == nil &&
		input.Role == nil &&
		input.IsEmailVerified == nil
}

/*
Update applies a partial update to an account.

Description: Loads the target, overlays the provided fields, re-checks
email/username uniqueness against OTHER accounts, and persists.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *sec.Account: Updated account
  - error: BadRequest (empty input), NotFound, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*sec.Account, error) {

	if input.isEmpty() {
		return nil, apperr.BadRequest("No update data provided")
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Uniqueness checks exclude the target itself so a no-op email update succeeds
	if input.Email != nil && *input.Email != user.Email {
		existing, err := service.userRepository.FindByEmail(context, *input.Email)
		if err == nil && existing.ID != user.ID {
			return nil, apperr.Conflict("Email already exists")
		}
	}

	if input.Username != nil && *input.Username != user.Username {
		existing, err := service.userRepository.FindByUsername(context, *input.Username)
		if err == nil && existing.ID != user.ID {
			return nil, apperr.Conflict("Username already exists")
		}
	}

	// Overlay the provided fields onto the loaded entity
	user.FirstName = pointer.Fallback(input.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(input.LastName, user.LastName)
	user.Username = pointer.Fallback(input.Username, user.Username)
	user.Email = pointer.Fallback(input.Email, user.Email)
	user.Role = pointer.Fallback(input.Role, user.Role)
	user.IsEmailVerified = pointer.Fallback(input.IsEmailVerified, user.IsEmailVerified)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user.Account(), nil
}

/*
UpdatePassword replaces an account's password.

Description: Hashes the new password and stores it. The target's existing
sessions stay alive; forcing logout on admin password changes is a product
decision left to the operator (they can delete the account instead).

Parameters:
  - context: context.Context
  - id: string
  - newPassword: string

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) UpdatePassword(context context.Context, id, newPassword string) error {

	// Confirm the target exists before hashing work
	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("admin_service_update_password_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes an account.

Description: Operators cannot delete themselves; that would orphan the very
session performing the deletion and risks locking the last admin out.

Parameters:
  - context: context.Context
  - callerID: string (the authenticated admin)
  - targetID: string

Returns:
  - error: BadRequest (self-deletion), NotFound, or storage failures
*/
func (service *Service) Delete(context context.Context, callerID, targetID string) error {

	if callerID == targetID {
		return apperr.BadRequest("Cannot delete your own account")
	}

	if err := service.userRepository.Delete(context, targetID); err != nil {
		return err
	}

	return nil
}
