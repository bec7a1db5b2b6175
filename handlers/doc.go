// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers.

# Structure

Each handler is a struct with injected dependencies (store, directory,
engine, suggestion provider) and a New constructor:

  - AccountHandler: register, login, logout, current member
  - GroupHandler: create group, join by code, roster lookup
  - DrawHandler: run (or replay) the caller's Secret Santa draw
  - SuggestionHandler: gift ideas for a recipient name

# Sessions

Authenticated endpoints expect an X-Session-Token header; requireMember
resolves it against the session table and writes the 401 itself when it
can't.

# Error Mapping

Core packages return sentinel errors; handlers translate them here:
group not found and bad join codes are 404, capacity / insufficient
members / unresolvable deadlocks / duplicate accounts are 409, a
requester outside the group is 403, bad credentials are 401.
*/
package handlers
