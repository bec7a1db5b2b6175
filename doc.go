// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Jingle Draw API server.

Jingle Draw runs Secret Santa exchanges for small groups: members
register, gather in a group via a short join code, and each draws
exactly one other member to gift - no self-matches, no recipient drawn
twice, and every draw durable once made.

# Starting the Server

	SESSION_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -t sqlite -d "file:jingledraw.db"

# Configuration

Required settings:

  - SESSION_SALT (--session-salt): Secret for credential and session HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string
  - IDEAS_API_URL / IDEAS_API_KEY: External gift idea API; without it
    suggestions fall back to a static list

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: durable entity store for members, groups, sessions
  - groups: group directory - creation, join codes, roster resolution
  - draw: the assignment engine (pure planner + per-group locking)
  - suggest: gift idea provider adapter with static fallback
  - handlers: HTTP request handlers (accounts, groups, draws, suggestions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Credential digests and session tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
