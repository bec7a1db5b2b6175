// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and API request/response shapes.

# Domain Types

Member and Group are the two persisted records. A member belongs to at
most one group (GroupID, nullable) and, once they have drawn, references
exactly one recipient in the same group (DrawnMemberID, nullable and
append-only: it is set once per exchange and never cleared).

MemberSummary is the view other members are allowed to see: display name
and avatar plus whether the member has drawn, but never who they drew.

# Assignments

Assignment is the unit of mutation produced by the draw engine. The
standard draw yields one assignment (requester -> match); the
deadlock-breaking swap yields two, which must persist atomically.

# Constants

  - MaxGroupSize (20): hard cap on group membership
  - JoinCodeLength (4): uppercase alphanumeric join codes
*/
package models
