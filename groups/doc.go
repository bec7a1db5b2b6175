// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package groups is the group directory: creating groups, issuing join
codes, and resolving rosters.

# Join Codes

Codes are 4 uppercase alphanumeric characters drawn from an injected
rand source. CreateGroup retries on collision until an unused code is
found (a single draw suffices almost always given the 36^4 space).
Entry is case-insensitive; codes are stored normalized uppercase.

# Capacity

Join and Enroll enforce the MaxGroupSize bound and fail with
ErrGroupFull at capacity. A member can belong to at most one group;
creating or joining a second fails with ErrAlreadyInGroup. The directory
serializes its check-then-act windows internally, so the capacity bound
and code uniqueness hold under concurrent calls.
*/
package groups
