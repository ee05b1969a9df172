// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/constants"
)

// # Session Store

// RedisSessionStore implements SessionStore using Redis.
//
// Redis expiry IS the session expiry: a key that has lapsed simply no longer
// resolves, which reads as a logged-out browser. No sweeper is needed.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// sessionKey builds the namespaced Redis key for a session ID.
func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

/*
Create stores a new session mapping with its TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Create(context context.Context, sessionID, userID string, ttl time.Duration) error {

	// Set the session with TTL
	if err := store.client.Set(context, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the userID owning a session.

Description: Returns apperr.Unauthorized if the session is absent or expired,
so callers treat both uniformly as "not logged in".

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - string: Owning UserID
  - error: apperr.Unauthorized or connectivity errors
*/
func (store *RedisSessionStore) Get(context context.Context, sessionID string) (string, error) {

	// Get the session from Redis
	userID, err := store.client.Get(context, sessionKey(sessionID)).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Session is invalid or expired")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}

	// Return the userID
	return userID, nil
}

/*
Refresh extends the TTL of an existing session (rolling expiry).

Description: Uses EXPIRE so a session that has already lapsed is NOT
resurrected; the refresh silently no-ops on a missing key.

Parameters:
  - context: context.Context
  - sessionID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Refresh(context context.Context, sessionID string, ttl time.Duration) error {

	// Extend the TTL of the session
	if err := store.client.Expire(context, sessionKey(sessionID), ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_refresh_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes a session from Redis.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Delete(context context.Context, sessionID string) error {

	// Delete the session from Redis
	if err := store.client.Del(context, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
