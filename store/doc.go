// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the durable entity store over database/sql.

# Contract

Gets return (record, ok, err): a missing record is ok == false with a
nil error, never an error. Puts are insert-or-replace keyed by ID.
ListGroupMembers returns a group's live roster in creation order,
silently omitting member IDs that no longer resolve.

# Assignments

ApplyAssignments is the one multi-record write: it applies the draw
engine's one or two drawn-recipient mutations inside a transaction, so
the deadlock-breaking swap is all-or-nothing. An assignment naming an
unknown member aborts the whole transaction.

# Lifecycle

A Store is created once per process (or test) around an open *sql.DB
and carries no other state.
*/
package store
