// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

# Helpers

  - WithLogging: request start/completion logging via slog
  - JSONResponse / ErrorResponse: JSON encoding with consistent error shape
  - ParseJSONBody: request body decoding
  - SessionToken: X-Session-Token header extraction
  - CORS: permissive cross-origin handling with preflight support

Handlers compose these rather than subclassing anything; there is no
middleware chain object.
*/
package middleware
