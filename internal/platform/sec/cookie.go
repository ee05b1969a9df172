// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// # Cookie Signing

// SignCookieValue returns "value.signature" where signature is the
// base64url-encoded HMAC-SHA256 of value under secret.
//
// The session identifier stored in the cookie is opaque and random, but
// signing it lets the server reject tampered or fabricated cookie values
// before touching the session store at all.
func SignCookieValue(value, secret string) string {
	return value + "." + cookieSignature(value, secret)
}

// VerifyCookieValue splits a signed cookie value and checks the signature.
//
// # Returns
//   - The original value and true when the signature is valid.
//   - Empty string and false for malformed or tampered input.
func VerifyCookieValue(signedValue, secret string) (string, bool) {
	dotIndex := strings.LastIndexByte(signedValue, '.')
	if dotIndex <= 0 || dotIndex == len(signedValue)-1 {
		return "", false
	}

	value := signedValue[:dotIndex]
	signature := signedValue[dotIndex+1:]

	expected := cookieSignature(value, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}

	return value, true
}

// cookieSignature computes the base64url HMAC-SHA256 signature for a value.
func cookieSignature(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
