// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - gift_group: Group name and unique join code
  - member: Accounts, group membership, and the drawn recipient
  - session: Opaque session tokens

# Relationships

	gift_group 1──* member (member.group_id, nullable)
	member 1──* session

member.drawn_member_id points at another member of the same group once
the member has drawn, and is never cleared afterwards.

# Portability

The same schema string works under both modernc.org/sqlite and lib/pq:
no DB-side defaults, application-supplied timestamps.
*/
package db
