// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pass-the-aux/models"
)

var (
	// ErrNotFound is returned when a row the caller asked for is absent
	ErrNotFound = errors.New("not found")

	// ErrIncrementUnsupported signals that the store cannot credit a
	// track atomically, and the caller must use the read-then-write
	// fallback path instead.
	ErrIncrementUnsupported = errors.New("atomic increment unsupported")
)

func init() {
	// modernc's driver registers as "sqlite", which sqlx doesn't know
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLStore is the turn store over a relational database. Queries are
// written with ? placeholders and rebound per driver, so one
// implementation serves both PostgreSQL (lib/pq) and SQLite (modernc).
type SQLStore struct {
	db *sqlx.DB
}

// Open connects to the database. driver is "postgres" or "sqlite".
func Open(driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// NewSQLStore wraps an existing connection (used by tests)
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB exposes the underlying connection for schema creation and shutdown
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// GetSession returns the session or ErrNotFound
func (s *SQLStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.GetContext(ctx, &sess, s.db.Rebind(`
		SELECT id, name, host_profile_id, started, started_at,
		       tracks_per_turn, tracks_this_turn, active_index, created_at
		FROM session
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &sess, nil
}

// GetParticipants returns the session's turn order, sorted by position
func (s *SQLStore) GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	participants := []models.Participant{}
	err := s.db.SelectContext(ctx, &participants, s.db.Rebind(`
		SELECT session_id, profile_id, position
		FROM session_participant
		WHERE session_id = ?
		ORDER BY position
	`), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	return participants, nil
}

// GetStat returns the play-count row for one participant, or ErrNotFound
// if no track has been credited and no player registered yet.
func (s *SQLStore) GetStat(ctx context.Context, sessionID, profileID string) (*models.SessionStat, error) {
	var stat models.SessionStat
	err := s.db.GetContext(ctx, &stat, s.db.Rebind(`
		SELECT session_id, profile_id, tracks, player_id
		FROM session_stat
		WHERE session_id = ? AND profile_id = ?
	`), sessionID, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session stat: %w", err)
	}
	return &stat, nil
}

// GetSessionStats returns all stat rows for a session
func (s *SQLStore) GetSessionStats(ctx context.Context, sessionID string) ([]models.SessionStat, error) {
	stats := []models.SessionStat{}
	err := s.db.SelectContext(ctx, &stats, s.db.Rebind(`
		SELECT session_id, profile_id, tracks, player_id
		FROM session_stat
		WHERE session_id = ?
		ORDER BY profile_id
	`), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session stats: %w", err)
	}
	return stats, nil
}

// IncrementStat credits one track to a participant, creating the stat row
// if it doesn't exist yet. The upsert-increment runs as a single statement,
// so it is safe under concurrent credits for the same participant.
func (s *SQLStore) IncrementStat(ctx context.Context, sessionID, profileID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO session_stat (session_id, profile_id, tracks)
		VALUES (?, ?, 1)
		ON CONFLICT (session_id, profile_id)
		DO UPDATE SET tracks = session_stat.tracks + 1
	`), sessionID, profileID)
	if err != nil {
		return fmt.Errorf("failed to increment stat: %w", err)
	}
	return nil
}

// SetStatTracks writes an absolute play count. This is the non-atomic
// fallback target for stores without an increment primitive; a concurrent
// credit between the caller's read and this write is lost.
func (s *SQLStore) SetStatTracks(ctx context.Context, sessionID, profileID string, tracks int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO session_stat (session_id, profile_id, tracks)
		VALUES (?, ?, ?)
		ON CONFLICT (session_id, profile_id)
		DO UPDATE SET tracks = excluded.tracks
	`), sessionID, profileID, tracks)
	if err != nil {
		return fmt.Errorf("failed to set stat tracks: %w", err)
	}
	return nil
}

// SetPlayerID registers a participant's push subscription on their stat
// row, creating it with a zero play count if needed.
func (s *SQLStore) SetPlayerID(ctx context.Context, sessionID, profileID, playerID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO session_stat (session_id, profile_id, tracks, player_id)
		VALUES (?, ?, 0, ?)
		ON CONFLICT (session_id, profile_id)
		DO UPDATE SET player_id = excluded.player_id
	`), sessionID, profileID, playerID)
	if err != nil {
		return fmt.Errorf("failed to set player ID: %w", err)
	}
	return nil
}

// UpdateSessionTurn writes the new turn pointer and per-turn counter only
// if the row still matches the previously read pair. Returns false when
// another writer got there first (compare-and-swap).
func (s *SQLStore) UpdateSessionTurn(ctx context.Context, id string, prev, next models.TurnState) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE session
		SET active_index = ?, tracks_this_turn = ?
		WHERE id = ? AND active_index = ? AND tracks_this_turn = ?
	`), next.ActiveIndex, next.TracksThisTurn, id, prev.ActiveIndex, prev.TracksThisTurn)
	if err != nil {
		return false, fmt.Errorf("failed to update session turn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

// CreateProfile inserts a new profile row
func (s *SQLStore) CreateProfile(ctx context.Context, p models.Profile) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO profile (id, display_name, created_at)
		VALUES (?, ?, ?)
	`), p.ID, p.DisplayName, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// CreateSession inserts a session and its ordered participant list in one
// transaction. Positions are assigned from the slice order.
func (s *SQLStore) CreateSession(ctx context.Context, sess models.Session, participantIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO session (id, name, host_profile_id, started, started_at,
		                     tracks_per_turn, tracks_this_turn, active_index, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), sess.ID, sess.Name, sess.HostProfileID, sess.Started, sess.StartedAt,
		sess.TracksPerTurn, sess.TracksThisTurn, sess.ActiveIndex, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for i, profileID := range participantIDs {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO session_participant (session_id, profile_id, position)
			VALUES (?, ?, ?)
		`), sess.ID, profileID, i)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClaimHost sets the session host if none is set yet. Returns false when
// the host seat was already taken (or the session doesn't exist).
func (s *SQLStore) ClaimHost(ctx context.Context, sessionID, profileID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE session
		SET host_profile_id = ?
		WHERE id = ? AND host_profile_id IS NULL
	`), profileID, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to claim host: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

// StartSession marks the session started. Returns false when it was
// already started (or the session doesn't exist).
func (s *SQLStore) StartSession(ctx context.Context, sessionID string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE session
		SET started = ?, started_at = ?
		WHERE id = ? AND NOT started
	`), true, at, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to start session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}
