// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/ctxutil"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Account extracts the authenticated account from the request context.

Returns nil if the request is not authenticated.
*/
func Account(request *http.Request) *sec.Account {
	return ctxutil.GetAccount(request.Context())
}

/*
RequiredAccount ensures the request is authenticated and returns the account.

Returns:
  - *sec.Account: The authenticated account
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredAccount(request *http.Request) (*sec.Account, error) {

	// Get the account placed in context by RequireAuth
	account := ctxutil.GetAccount(request.Context())

	// If the user is not authenticated, return an error
	if account == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return account, nil
}
