// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package auth

import "time"

// # Password Reset

const (
	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL = 10 * time.Minute

	// ResetTokenLength is the byte length of the raw reset token.
	ResetTokenLength = 32
)

// # Validation Bounds

const (
	// NameMaxLen bounds first and last names.
	NameMaxLen = 50

	// UsernameMinLen and UsernameMaxLen bound the unique handle.
	UsernameMinLen = 3
	UsernameMaxLen = 30

	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 8
)
