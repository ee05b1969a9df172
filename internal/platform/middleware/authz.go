// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

// Session resolution and route guards (AuthN/AuthZ).

package middleware

import (
	"context"
	"net/http"

	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/constants"
	"github.com/nexushost/api/internal/platform/ctxutil"
	"github.com/nexushost/api/internal/platform/respond"
	"github.com/nexushost/api/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve sessions in middleware.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
type SessionResolver interface {
	// ResolveSession maps a session ID to its account, refreshing the
	// session's TTL as a side effect (rolling expiry).
	ResolveSession(ctx context.Context, sessionID string) (*sec.Account, error)
}

// Session extracts and verifies the signed session cookie.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, request proceeds as anonymous.
//  3. Verify the HMAC signature on the cookie value; tampered cookies are
//     treated as absent and cleared.
//  4. Resolve the session ID to an account via [SessionResolver]; unknown or
//     expired sessions are treated as absent and the cookie cleared. Store
//     or database failures answer 500 and keep the cookie intact.
//  5. Inject [*sec.Account] and the session ID into the request context.
//
// # Parameters
//   - resolver: The SessionResolver instance.
//   - secret: The HMAC key the cookie value was signed with.
//
// # Returns
//   - An [http.Handler] middleware.
func Session(resolver SessionResolver, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Signature Verification ─────────────────────────────────────
			sessionID, valid := sec.VerifyCookieValue(cookie.Value, secret)
			if !valid {
				clearSessionCookie(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Session Resolution ─────────────────────────────────────────
			account, err := resolver.ResolveSession(request.Context(), sessionID)
			if err != nil {
				// Only a confirmed invalid session clears the cookie. An
				// infrastructure failure answers 500 and leaves the cookie
				// alone: the browser's session may still exist server-side.
				appError := apperr.As(err)
				if appError == nil || appError.HTTPStatus != http.StatusUnauthorized {
					respond.Error(writer, request, err)
					return
				}
				clearSessionCookie(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAccount(request.Context(), account)
			ctx = ctxutil.WithSessionID(ctx, sessionID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Session].
//
// # Flow
//  1. Check if [*sec.Account] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		account := ctxutil.GetAccount(request.Context())
		if account == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireGuest blocks requests from clients that already hold a session.
//
// # Usage
//
// Mounted on register and login so an authenticated browser cannot open a
// second, conflicting session. Must be registered AFTER [Session].
func RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		account := ctxutil.GetAccount(request.Context())
		if account != nil {
			respond.Error(writer, request, apperr.BadRequest("Already authenticated"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests unless the authenticated account has the admin role.
//
// # Usage
//
// Must be registered in the router AFTER [Session]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Account] exists in context (implies AuthN).
//  2. Check the account's role; admin is a flat check, not a hierarchy.
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		account := ctxutil.GetAccount(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if account == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !account.Role.IsAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Admin access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// clearSessionCookie instructs the browser to drop the session cookie.
func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
