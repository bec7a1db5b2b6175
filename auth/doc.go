// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential digests and session token generation.

# Password Digests

PasswordDigest produces a deterministic HMAC-SHA256 digest keyed on the
server's session salt and bound to the member's email:

	digest := auth.PasswordDigest(email, password, cfg.SessionSalt)

VerifyPassword compares in constant time and returns ErrAuthFailed on
mismatch. This is deliberately simple account handling, not hardened
password storage.

# Session Tokens

GenerateSessionToken returns an opaque 192-bit random token, URL-safe
base64 without padding. Tokens are stored server-side in the session
table and presented by clients in the X-Session-Token header.
*/
package auth
