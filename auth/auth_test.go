// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestPasswordDigest(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		salt     string
	}{
		{"standard", "santa@northpole.dev", "hohoho", "secret-salt"},
		{"empty password", "elf@northpole.dev", "", "salt"},
		{"empty salt", "rudolph@northpole.dev", "carrots", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := PasswordDigest(tt.email, tt.password, tt.salt)

			// Should not be empty
			if digest == "" {
				t.Error("PasswordDigest() returned empty string")
			}

			// Should be deterministic
			digest2 := PasswordDigest(tt.email, tt.password, tt.salt)
			if digest != digest2 {
				t.Error("PasswordDigest() is not deterministic")
			}

			// Different passwords should produce different digests
			differentDigest := PasswordDigest(tt.email, tt.password+"x", tt.salt)
			if digest == differentDigest {
				t.Error("PasswordDigest() produced same digest for different passwords")
			}

			// Same password under a different email should differ too
			otherEmail := PasswordDigest(tt.email+"x", tt.password, tt.salt)
			if digest == otherEmail {
				t.Error("PasswordDigest() produced same digest for different emails")
			}

			// Should be URL-safe (no padding)
			if strings.Contains(digest, "=") {
				t.Error("PasswordDigest() contains padding characters")
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	email := "santa@northpole.dev"
	salt := "test-salt"
	digest := PasswordDigest(email, "hohoho", salt)

	tests := []struct {
		name     string
		email    string
		password string
		salt     string
		digest   string
		wantErr  bool
	}{
		{"valid password", email, "hohoho", salt, digest, false},
		{"wrong password", email, "hahaha", salt, digest, true},
		{"wrong email", "grinch@mountain.dev", "hohoho", salt, digest, true},
		{"wrong salt", email, "hohoho", "different-salt", digest, true},
		{"empty password", email, "", salt, digest, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.email, tt.password, tt.salt, tt.digest)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrAuthFailed {
				t.Errorf("VerifyPassword() error = %v, want %v", err, ErrAuthFailed)
			}
		})
	}
}

func TestGenerateSessionToken(t *testing.T) {
	// Test basic generation
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateSessionToken() returned empty string")
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("GenerateSessionToken() contains padding characters")
	}

	// Should be reasonably long (24 bytes encoded)
	if len(token) < 30 {
		t.Errorf("GenerateSessionToken() too short: %d chars", len(token))
	}

	// Test randomness - should not produce duplicates
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("GenerateSessionToken() error on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Errorf("GenerateSessionToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Santa@NorthPole.dev", "santa@northpole.dev"},
		{"  elf@northpole.dev ", "elf@northpole.dev"},
		{"plain@example.com", "plain@example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
