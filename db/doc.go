// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(st.DB()); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables. The DDL
is portable between SQLite and PostgreSQL; timestamps are written by the
application rather than database defaults.

# Tables

The schema includes:

  - profile: Display names for DJs
  - session: Session metadata, host, and the two turn counters
  - session_participant: Ordered turn ring (position per session)
  - session_stat: Per-participant play counts and push player IDs

# Relationships

	session 1──* session_participant
	session 1──* session_stat
	profile 1──* session_participant

session_participant enforces one position per profile per session
(primary key) and one profile per position (unique constraint).
*/
package db
