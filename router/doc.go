// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers using Go 1.22+ method
routing on the standard ServeMux.

# Routes

	POST /auth/register        create account (optionally joining by code)
	POST /auth/login           open a session
	POST /auth/logout          close a session
	GET  /auth/me              current member

	POST /groups               create a group
	POST /groups/join          join a group by code
	GET  /groups/{id}          group and roster

	POST /groups/{id}/draw     run (or replay) the caller's draw

	GET  /suggestions?name=    gift ideas for a recipient
	GET  /health               health check
*/
package router
