// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is kept portable across PostgreSQL and SQLite: TEXT keys,
// explicit timestamps (no NOW() defaults), no backend-specific types.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Profiles (people; stable across sessions)
CREATE TABLE IF NOT EXISTS profile (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Listening sessions. active_index and tracks_this_turn are owned by the
-- turn engine once the session is live; host/started come from host actions.
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    host_profile_id TEXT REFERENCES profile(id),
    started BOOLEAN NOT NULL,
    started_at TIMESTAMP,
    tracks_per_turn INTEGER NOT NULL,
    tracks_this_turn INTEGER NOT NULL,
    active_index INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Ordered participant list, fixed at session creation
CREATE TABLE IF NOT EXISTS session_participant (
    session_id TEXT NOT NULL REFERENCES session(id),
    profile_id TEXT NOT NULL REFERENCES profile(id),
    position INTEGER NOT NULL,
    PRIMARY KEY (session_id, profile_id),
    UNIQUE (session_id, position)
);

CREATE INDEX IF NOT EXISTS idx_session_participant_session ON session_participant(session_id);

-- Per-(session, participant) accumulated play count and push subscription.
-- Rows are created lazily on first credit or player registration.
CREATE TABLE IF NOT EXISTS session_stat (
    session_id TEXT NOT NULL REFERENCES session(id),
    profile_id TEXT NOT NULL REFERENCES profile(id),
    tracks INTEGER NOT NULL,
    player_id TEXT,
    PRIMARY KEY (session_id, profile_id)
);

CREATE INDEX IF NOT EXISTS idx_session_stat_session ON session_stat(session_id);
`
