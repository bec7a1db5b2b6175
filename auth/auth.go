// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrAuthFailed = errors.New("invalid email or password")

// PasswordDigest creates an HMAC-based digest of a password, keyed on
// the email so identical passwords don't collide.
// This is deterministic and verifiable.
func PasswordDigest(email, password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(email))
	h.Write([]byte{0})
	h.Write([]byte(password))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner digests
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VerifyPassword checks a password attempt against a stored digest
func VerifyPassword(email, password, salt, digest string) error {
	expected := PasswordDigest(email, password, salt)
	if !hmac.Equal([]byte(digest), []byte(expected)) {
		return ErrAuthFailed
	}
	return nil
}

// GenerateSessionToken creates a random secure token for a logged-in member
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// NormalizeEmail lowercases and trims an email for lookup and storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
