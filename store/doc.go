// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides sqlx-backed persistence for sessions, participants,
and play statistics.

# Opening a Store

The store runs on SQLite (modernc.org/sqlite, no cgo) or PostgreSQL
(lib/pq) behind the same queries:

	st, err := store.Open("sqlite", "file:aux.db")
	st, err := store.Open("postgres", "postgres://...")

Queries are written with ? placeholders and rebound per driver via
sqlx.Rebind.

# Turn State

UpdateSessionTurn is a compare-and-swap on the two turn counters:

	ok, err := st.UpdateSessionTurn(ctx, sessionID, prev, next)

The swap succeeds only if the row still holds prev; ok=false means a
concurrent writer got there first and the caller should re-read.

# Play Statistics

Stat rows are created lazily on first credit. IncrementStat uses an
atomic upsert; SetStatTracks writes an absolute count for backends
without upsert support. SetPlayerID attaches a push subscription to a
participant's stat row without touching the track count.

# Errors

Lookups of missing rows return ErrNotFound. ErrIncrementUnsupported
signals that the backend cannot increment atomically and the caller
should fall back to read-then-write.
*/
package store
