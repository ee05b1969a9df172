// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle—from account
creation to session management and recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Owns the signed session cookie (issue, rotate, clear).
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nexushost/api/internal/platform/constants"
	"github.com/nexushost/api/internal/platform/ctxutil"
	"github.com/nexushost/api/internal/platform/middleware"
	requestutil "github.com/nexushost/api/internal/platform/request"
	"github.com/nexushost/api/internal/platform/respond"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Logout, Password Reset callbacks).
type Handler struct {
	authService   *Service
	sessionSecret string
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
//
// # Parameters
//   - service: The auth [Service].
//   - sessionSecret: HMAC key for signing the session cookie.
//   - secureCookies: Whether cookies carry the Secure flag (production).
func NewHandler(service *Service, sessionSecret string, secureCookies bool) *Handler {
	return &Handler{
		authService:   service,
		sessionSecret: sessionSecret,
		secureCookies: secureCookies,
	}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account (guests only).
//   - POST /login           : Authenticates and issues a session cookie (guests only).
//   - POST /logout          : Destroys the session (authenticated only).
//   - GET  /me              : Returns the current account (authenticated only).
//   - POST /forgot-password : Starts the password-reset flow.
//   - POST /reset-password  : Completes the password-reset flow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Guest-only endpoints: an authenticated browser must log out first
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireGuest)
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
	})

	// Public endpoints
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and immediately establishes a session for the new account.

Request:
  - Body: registerRequest (FirstName, LastName, Username, Email, Password)

Response:
  - 201: user: Created account profile (session cookie set)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, NameMaxLen).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, NameMaxLen).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Register implies login: mint a session for the new account
	sessionID, err := handler.authService.StartSession(request.Context(), user.ID, ctxutil.GetSessionID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, sessionID)
	respond.Created(writer, "User registered successfully", map[string]any{
		FieldUser: user.Account(),
	})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, regenerates the session identifier, and
injects the signed session cookie into the response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: user: Account profile (session cookie set)
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Session fixation mitigation: always rotate the identifier on login
	sessionID, err := handler.authService.StartSession(request.Context(), user.ID, ctxutil.GetSessionID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, sessionID)
	respond.OK(writer, "Login successful", map[string]any{
		FieldUser: user.Account(),
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Destroys the server-side session and clears the cookie from the
client. The cookie is cleared even if the store deletion fails, so the
browser never keeps a dangling credential.

Response:
  - 200: Success: Session terminated
  - 401: ErrUnauthorized: No active session
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	sessionID := ctxutil.GetSessionID(request.Context())

	// Clear the cookie unconditionally before reporting any store failure
	handler.clearSessionCookie(writer)

	if err := handler.authService.DestroySession(request.Context(), sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Logout successful")
}

/*
Me returns the authenticated user's profile.

GET /api/v1/auth/me

Description: Echoes the sanitized account already resolved by the session
middleware. No additional storage reads are needed.

Response:
  - 200: user: Account profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	account, err := requestutil.RequiredAccount(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved successfully", map[string]any{
		FieldUser: account,
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Description: Issues a reset token to the given email if an account exists.
The response is identical either way to prevent account enumeration.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Success: Uniform acknowledgement
  - 400: ErrInvalidJSON: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "If an account with that email exists, a password reset link has been sent.")
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Description: Validates the reset token, updates the password, and destroys
the caller's current session (if any). The cookie is cleared so the browser
re-authenticates with the new credentials.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Unknown/expired token or weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := ctxutil.GetSessionID(request.Context())
	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sessionID != "" {
		handler.clearSessionCookie(writer)
	}

	respond.Message(writer, "Password has been reset successfully")
}

// # Cookie Helpers

// setSessionCookie writes the signed session cookie to the response.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, sessionID string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sec.SignCookieValue(sessionID, handler.sessionSecret),
		Path:     constants.SessionCookiePath,
		Expires:  time.Now().Add(constants.SessionTTL),
		MaxAge:   int(constants.SessionTTL / time.Second),
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie instructs the browser to drop the session cookie.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
