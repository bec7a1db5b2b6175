// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw implements the Secret Santa assignment engine.

# Invariants

At any time, for any group:

  - no member draws themself
  - no recipient is claimed by two drawers
  - a draw, once made, is durable: repeating it returns the same match
    and writes nothing
  - a drawn recipient is always a current member of the same group

After every member of an N >= 2 group has drawn, the mapping is a
derangement of the roster: total, fixed-point free, and a bijection.

# Planning vs. Running

Plan is a pure function of (roster snapshot, requester, rand source)
returning the match plus the mutations to persist. Engine.Draw wraps it
with a per-group mutex and persists the mutations transactionally; the
lock is what keeps two members of one group from racing each other into
claiming the same recipient.

# The Last-Drawer Swap

A random build-up of the assignment can strand the last drawer with
nobody left but themself. Plan resolves this by transferring another
member's claim: the requester takes that member's recipient, and that
member draws the requester instead. Both mutations persist atomically.
A state where the swap cannot re-establish the invariants (fewer than 3
effective participants) fails with ErrDeadlockUnresolvable; the fix is
more participants, not a retry.
*/
package draw
