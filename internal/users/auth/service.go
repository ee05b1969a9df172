// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
session lifecycle management via opaque, HMAC-signed cookie sessions stored
in Redis.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Password Reset).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Bcrypt password hashing, SHA-256 reset-token hashing, random
    session identifiers regenerated on every privilege change.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/constants"
	"github.com/nexushost/api/internal/platform/mail"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/pkg/uuid"
)

// # Definitions & Constructors

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, session,
// or login logic must be reviewed by the platform team.
type Service struct {
	userRepository UserRepository
	sessionStore   SessionStore
	mailer         mail.Mailer
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessions SessionStore, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		sessionStore:   sessions,
		mailer:         mailer,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
the default role assignment.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

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

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable internal ID plus a random
	// public UUID that never leaks creation order.
	user := &User{
		ID:              uuid.New(),
		UUID:            uuid.NewV4(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Username:        input.Username,
		Email:           input.Email,
		PasswordHash:    hashedPassword,
		Role:            sec.RoleUser,
		IsEmailVerified: false,
	}

	// Persist the user to the database. The Conflict mapping inside Create
	// covers the race between the proactive checks above and this insert.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// dummyPasswordHash is a bcrypt hash (of a throwaway value) compared against
// when the email lookup misses, equalizing login timing for unknown emails.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials.

Description: Verifies identity using constant-time password comparison. Both
an unknown email and a wrong password produce the same generic message to
prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: Authenticated entity
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*User, error) {

	// Look up the account by email
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	// The dummy comparison keeps the miss path's cost in line with a real one,
	// so response time does not reveal whether the email exists either.
	if err != nil {
		sec.CheckPasswordHash(input.Password, dummyPasswordHash)
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return user, nil
}

// # Session Management

/*
StartSession establishes a fresh session for the user.

Description: Generates a new random session identifier and stores the mapping
in Redis. If the browser already held a session (oldSessionID non-empty), it
is destroyed first so the identifier rotates on every privilege change
(session fixation mitigation).

Parameters:
  - context: context.Context
  - userID: string
  - oldSessionID: string (empty when the request was anonymous)

Returns:
  - string: New session ID (unsigned; the HTTP layer signs it into the cookie)
  - error: Generation or storage failures
*/
func (service *Service) StartSession(context context.Context, userID, oldSessionID string) (string, error) {

	// Rotate: drop the prior session before minting a new identifier
	if oldSessionID != "" {
		_ = service.sessionStore.Delete(context, oldSessionID)
	}

	// Generate the opaque session identifier
	sessionID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_session_id_failed: %w", err)
	}

	// Persist the session mapping with the rolling TTL
	if err := service.sessionStore.Create(context, sessionID, userID, constants.SessionTTL); err != nil {
		return "", fmt.Errorf("auth_service_session_create_failed: %w", err)
	}

	return sessionID, nil
}

/*
DestroySession removes the session from the registry.

Description: Logout primitive. Idempotent: destroying an already-gone session
succeeds.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Storage failures
*/
func (service *Service) DestroySession(context context.Context, sessionID string) error {
	if err := service.sessionStore.Delete(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_session_destroy_failed: %w", err)
	}
	return nil
}

/*
ResolveSession maps a session ID to its account.

Description: Called by the session middleware on every request carrying a
valid cookie. Looks up the owning user, refreshes the session TTL (rolling
expiry), and returns the sanitized account view. A session whose user row has
vanished is destroyed on sight.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *sec.Account: Sanitized account for context injection
  - error: apperr.Unauthorized for unknown, expired, or orphaned sessions;
    storage failures propagate unchanged (they are not a logout)
*/
func (service *Service) ResolveSession(context context.Context, sessionID string) (*sec.Account, error) {

	// Resolve the session to its owning user ID
	userID, err := service.sessionStore.Get(context, sessionID)
	if err != nil {
		return nil, err
	}

	// Load the current user record; sessions never cache profile data
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		// Orphaned session: the account was deleted while logged in.
		// Only a confirmed missing row destroys the session; any other
		// failure must not log users out over a database outage.
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			_ = service.sessionStore.Delete(context, sessionID)
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("auth_service_resolve_session_failed: %w", err)
	}

	// Rolling expiry: active browsers stay logged in indefinitely
	_ = service.sessionStore.Refresh(context, sessionID, constants.SessionTTL)

	return user.Account(), nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token, stores its hash with a short expiry on
the user row, and emails the raw token. The method reports success regardless
of whether the email matched an account: the HTTP layer returns a uniform
acknowledgement either way to prevent user enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Generation or storage failures (never "email not found")
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {

	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil
	}

	// Generate reset token; only the hash touches persistent storage
	rawToken, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(ResetTokenTTL)
	if err := service.userRepository.SetResetToken(context, user.ID, sec.HashToken(rawToken), expiresAt); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	// Delivery runs inline but its failure must not flip the uniform
	// acknowledgement into an error the client can observe.
	if err := service.mailer.SendPasswordReset(user.Email, rawToken); err != nil {
		service.logger.Error("password_reset_email_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token against its stored hash, rotates the password,
and consumes the token in the same statement (single-use). The caller's
current session, if any, is destroyed so the fresh credentials must be used.

Parameters:
  - context: context.Context
  - rawToken: string
  - newPassword: string
  - currentSessionID: string (empty when the request was anonymous)

Returns:
  - error: BadRequest for unknown/expired tokens, or update failures
*/
func (service *Service) ResetPassword(context context.Context, rawToken, newPassword, currentSessionID string) error {

	// Resolve the token hash to its account; expiry is enforced in the query
	user, err := service.userRepository.FindByResetTokenHash(context, sec.HashToken(rawToken))
	if err != nil {
		return apperr.BadRequest("Invalid or expired reset token")
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Rotate the password and consume the token atomically
	if err := service.userRepository.UpdatePasswordAndClearResetToken(context, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: drop the session this request rode in on
	if currentSessionID != "" {
		_ = service.sessionStore.Delete(context, currentSessionID)
	}

	return nil
}
