// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushost/api/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and constant-time verification.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, sec.CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, sec.CheckPasswordHash("WrongPass1", hash))
}

/*
TestGenerateSecureToken verifies length and uniqueness of random tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 random bytes hex-encode to 64 characters
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies that token hashing is deterministic and one-way.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("raw-token")

	assert.Equal(t, digest, sec.HashToken("raw-token"))
	assert.NotEqual(t, digest, sec.HashToken("other-token"))
	assert.Len(t, digest, 64)
}

/*
TestCookieSigning verifies the sign/verify round-trip and tamper rejection.
*/
func TestCookieSigning(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"

	signed := sec.SignCookieValue("session-id", secret)

	value, ok := sec.VerifyCookieValue(signed, secret)
	assert.True(t, ok)
	assert.Equal(t, "session-id", value)

	// Tampered value
	_, ok = sec.VerifyCookieValue("other-id"+signed[len("session-id"):], secret)
	assert.False(t, ok)

	// Wrong secret
	_, ok = sec.VerifyCookieValue(signed, "another-secret-another-secret-xx")
	assert.False(t, ok)

	// Malformed inputs
	_, ok = sec.VerifyCookieValue("no-dot-here", secret)
	assert.False(t, ok)
	_, ok = sec.VerifyCookieValue(".signature-only", secret)
	assert.False(t, ok)
	_, ok = sec.VerifyCookieValue("value-only.", secret)
	assert.False(t, ok)
}

/*
TestUserRole verifies the flat authorization checks.
*/
func TestUserRole(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsAdmin())
	assert.False(t, sec.RoleClient.IsAdmin())
	assert.False(t, sec.RoleUser.IsAdmin())

	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.UserRole("superuser").Valid())
}
