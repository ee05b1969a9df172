// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
HTTP delivery layer for the administrative user-management surface.

Every endpoint in this file requires an authenticated admin session; the
[middleware.RequireAdmin] guard is applied to the whole router.
*/
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexushost/api/internal/platform/middleware"
	requestutil "github.com/nexushost/api/internal/platform/request"
	"github.com/nexushost/api/internal/platform/respond"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/internal/platform/validate"
	"github.com/nexushost/api/internal/users/auth"
	"github.com/nexushost/api/pkg/convert"
	"github.com/nexushost/api/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the admin user-management HTTP endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with the user-management routes.
//
// # Endpoints
//   - GET    /               : Lists accounts (paginated, filterable).
//   - POST   /               : Creates an account with any role.
//   - GET    /{id}           : Returns a single account.
//   - PUT    /{id}           : Partially updates an account.
//   - PATCH  /{id}/password  : Replaces an account's password.
//   - DELETE /{id}           : Removes an account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Patch("/{id}/password", handler.updatePassword)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createUserRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

type updateUserRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Role            *string `json:"role"`
	IsEmailVerified *bool   `json:"isEmailVerified"`
}

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

/*
List returns a paginated page of accounts.

GET /api/v1/admin/users

Description: Supports free-text search plus role and verification filters.

Request:
  - Query: page, limit, search, role, isEmailVerified

Response:
  - 200: []Account + pagination metadata
  - 400: ErrInvalidJSON: Unknown role filter
  - 403: ErrForbidden: Admin access required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	role := query.Get("role")
	if role != "" {
		validator := &validate.Validator{}
		validator.OneOf(auth.FieldRole, role, sec.AllRoles...)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	params := pagination.FromRequest(request)
	filter := auth.ListFilter{
		Search:          query.Get("search"),
		Role:            sec.UserRole(role),
		IsEmailVerified: convert.ToBoolPtr(query.Get("isEmailVerified")),
		Limit:           params.Limit,
		Offset:          params.Offset(),
	}

	accounts, total, err := handler.adminService.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Users retrieved successfully", accounts,
		pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns a single account by ID.

GET /api/v1/admin/users/{id}

Response:
  - 200: Account
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required(auth.FieldID, id).UUID(auth.FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User retrieved successfully", account)
}

/*
Create provisions a new account on behalf of an operator.

POST /api/v1/admin/users

Description: Same field rules as self-registration plus role assignment and
optional pre-verification.

Request:
  - Body: createUserRequest

Response:
  - 201: Account: Created account
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Email or username taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldFirstName, input.FirstName).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.NameMaxLen).
		Required(auth.FieldLastName, input.LastName).
		MaxLen(auth.FieldLastName, input.LastName, auth.NameMaxLen).
		Required(auth.FieldUsername, input.Username).
		MinLen(auth.FieldUsername, input.Username, auth.UsernameMinLen).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLen).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.PasswordMinLen).
		Password(auth.FieldPassword, input.Password).
		Required(auth.FieldRole, input.Role).
		OneOf(auth.FieldRole, input.Role, sec.AllRoles...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Create(request.Context(), CreateInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Username:        input.Username,
		Email:           input.Email,
		Password:        input.Password,
		Role:            sec.UserRole(input.Role),
		IsEmailVerified: input.IsEmailVerified,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User created successfully", account)
}

/*
Update applies a partial update to an account.

PUT /api/v1/admin/users/{id}

Description: Only the provided fields change. A body with no recognized
fields is rejected.

Request:
  - Body: updateUserRequest (all fields optional)

Response:
  - 200: Account: Updated account
  - 400: ErrInvalidJSON: Empty body or validation failure
  - 404: ErrNotFound: Unknown account
  - 409: ErrConflict: Email or username taken
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required(auth.FieldID, id).UUID(auth.FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Validate only the fields that were actually provided
	validator = &validate.Validator{}
	if input.FirstName != nil {
		validator.Required(auth.FieldFirstName, *input.FirstName).
			MaxLen(auth.FieldFirstName, *input.FirstName, auth.NameMaxLen)
	}
	if input.LastName != nil {
		validator.Required(auth.FieldLastName, *input.LastName).
			MaxLen(auth.FieldLastName, *input.LastName, auth.NameMaxLen)
	}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, *input.Username).
			MinLen(auth.FieldUsername, *input.Username, auth.UsernameMinLen).
			MaxLen(auth.FieldUsername, *input.Username, auth.UsernameMaxLen).
			Username(auth.FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email)
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role, sec.AllRoles...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := UpdateInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Username:        input.Username,
		Email:           input.Email,
		IsEmailVerified: input.IsEmailVerified,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		updateInput.Role = &role
	}

	account, err := handler.adminService.Update(request.Context(), id, updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User updated successfully", account)
}

/*
UpdatePassword replaces an account's password.

PATCH /api/v1/admin/users/{id}/password

Request:
  - Body: updatePasswordRequest (NewPassword)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Weak password
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) updatePassword(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required(auth.FieldID, id).UUID(auth.FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator = &validate.Validator{}
	validator.Required(auth.FieldNewPassword, input.NewPassword).
		MinLen(auth.FieldNewPassword, input.NewPassword, auth.PasswordMinLen).
		Password(auth.FieldNewPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.UpdatePassword(request.Context(), id, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "User password updated successfully")
}

/*
Delete permanently removes an account.

DELETE /api/v1/admin/users/{id}

Description: Self-deletion is rejected so an operator cannot saw off the
branch they are sitting on.

Response:
  - 200: Success: Account removed
  - 400: ErrInvalidJSON: Self-deletion attempt
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required(auth.FieldID, id).UUID(auth.FieldID, id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	caller, err := requestutil.RequiredAccount(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Delete(request.Context(), caller.ID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "User deleted successfully")
}
