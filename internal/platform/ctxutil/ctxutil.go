// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/nexushost/api/internal/platform/ctxkey"
	"github.com/nexushost/api/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAccount returns a new context with the authenticated account attached.
func WithAccount(ctx context.Context, account *sec.Account) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAccount, account)
}

// GetAccount retrieves the [*sec.Account] from the [context.Context].
// Returns nil for anonymous requests.
func GetAccount(ctx context.Context) *sec.Account {
	account, ok := ctx.Value(ctxkey.KeyAccount).(*sec.Account)
	if !ok {
		return nil
	}
	return account
}

// # Session Tracking

// WithSessionID returns a new context with the resolved session ID attached.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxkey.KeySessionID, sessionID)
}

// GetSessionID retrieves the current session ID from the context.
// Returns an empty string when the request carried no valid session cookie.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeySessionID).(string)
	return id
}
