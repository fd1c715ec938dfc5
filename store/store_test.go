// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/store"
	"github.com/danielhkuo/pass-the-aux/testutil"
)

func TestGetSessionNotFound(t *testing.T) {
	st := testutil.SetupTestStore(t)

	_, err := st.GetSession(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 3, 2)

	sess, err := st.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}

	if sess.ID != sessionID {
		t.Errorf("Expected ID %s, got %s", sessionID, sess.ID)
	}
	if sess.TracksPerTurn != 2 {
		t.Errorf("Expected tracks_per_turn 2, got %d", sess.TracksPerTurn)
	}
	if sess.ActiveIndex != 0 || sess.TracksThisTurn != 0 {
		t.Errorf("Expected fresh turn state (0, 0), got (%d, %d)", sess.ActiveIndex, sess.TracksThisTurn)
	}
	if sess.Started {
		t.Error("New session should not be started")
	}
	if sess.HostProfileID != nil {
		t.Error("New session should have no host")
	}

	participants, err := st.GetParticipants(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetParticipants failed: %v", err)
	}
	if len(participants) != 3 {
		t.Fatalf("Expected 3 participants, got %d", len(participants))
	}
	for i, p := range participants {
		if p.Position != i {
			t.Errorf("Participant %d: expected position %d, got %d", i, i, p.Position)
		}
		if p.ProfileID != profileIDs[i] {
			t.Errorf("Participant %d: expected profile %s, got %s", i, profileIDs[i], p.ProfileID)
		}
	}
}

func TestGetParticipantsEmptyForUnknownSession(t *testing.T) {
	st := testutil.SetupTestStore(t)

	participants, err := st.GetParticipants(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetParticipants failed: %v", err)
	}
	if len(participants) != 0 {
		t.Errorf("Expected empty list, got %d participants", len(participants))
	}
}

func TestIncrementStatCreatesRowLazily(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)
	ctx := context.Background()

	// No row before the first credit
	_, err := st.GetStat(ctx, sessionID, profileIDs[0])
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before first credit, got %v", err)
	}

	if err := st.IncrementStat(ctx, sessionID, profileIDs[0]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}
	if err := st.IncrementStat(ctx, sessionID, profileIDs[0]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}

	stat, err := st.GetStat(ctx, sessionID, profileIDs[0])
	if err != nil {
		t.Fatalf("GetStat failed: %v", err)
	}
	if stat.Tracks != 2 {
		t.Errorf("Expected 2 tracks, got %d", stat.Tracks)
	}
	if stat.PlayerID != nil {
		t.Errorf("Expected no player ID, got %v", *stat.PlayerID)
	}
}

func TestSetPlayerIDPreservesTracks(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)
	ctx := context.Background()

	if err := st.IncrementStat(ctx, sessionID, profileIDs[0]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}
	if err := st.SetPlayerID(ctx, sessionID, profileIDs[0], "11111111-2222-3333-4444-555555555555"); err != nil {
		t.Fatalf("SetPlayerID failed: %v", err)
	}

	stat, err := st.GetStat(ctx, sessionID, profileIDs[0])
	if err != nil {
		t.Fatalf("GetStat failed: %v", err)
	}
	if stat.Tracks != 1 {
		t.Errorf("Registering a player must not reset tracks: got %d", stat.Tracks)
	}
	if stat.PlayerID == nil || *stat.PlayerID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("Player ID not stored: %v", stat.PlayerID)
	}

	// And crediting afterwards keeps the player ID
	if err := st.IncrementStat(ctx, sessionID, profileIDs[0]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}
	stat, _ = st.GetStat(ctx, sessionID, profileIDs[0])
	if stat.PlayerID == nil {
		t.Error("Credit wiped the player ID")
	}
	if stat.Tracks != 2 {
		t.Errorf("Expected 2 tracks, got %d", stat.Tracks)
	}
}

func TestSetStatTracksWritesAbsoluteCount(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 1, 1)
	ctx := context.Background()

	if err := st.SetStatTracks(ctx, sessionID, profileIDs[0], 5); err != nil {
		t.Fatalf("SetStatTracks failed: %v", err)
	}

	stat, err := st.GetStat(ctx, sessionID, profileIDs[0])
	if err != nil {
		t.Fatalf("GetStat failed: %v", err)
	}
	if stat.Tracks != 5 {
		t.Errorf("Expected 5 tracks, got %d", stat.Tracks)
	}
}

func TestUpdateSessionTurnCompareAndSwap(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, _ := testutil.CreateTestSession(t, st, 2, 2)
	ctx := context.Background()

	// Swap from the actual state succeeds
	ok, err := st.UpdateSessionTurn(ctx, sessionID,
		models.TurnState{ActiveIndex: 0, TracksThisTurn: 0},
		models.TurnState{ActiveIndex: 0, TracksThisTurn: 1},
	)
	if err != nil {
		t.Fatalf("UpdateSessionTurn failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected swap from current state to succeed")
	}

	// Swap from a stale read does nothing
	ok, err = st.UpdateSessionTurn(ctx, sessionID,
		models.TurnState{ActiveIndex: 0, TracksThisTurn: 0},
		models.TurnState{ActiveIndex: 1, TracksThisTurn: 0},
	)
	if err != nil {
		t.Fatalf("UpdateSessionTurn failed: %v", err)
	}
	if ok {
		t.Fatal("Expected stale swap to be rejected")
	}

	sess, err := st.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess.ActiveIndex != 0 || sess.TracksThisTurn != 1 {
		t.Errorf("Expected (0, 1), got (%d, %d)", sess.ActiveIndex, sess.TracksThisTurn)
	}
}

func TestClaimHostOnlyOnce(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)
	ctx := context.Background()

	ok, err := st.ClaimHost(ctx, sessionID, profileIDs[0])
	if err != nil {
		t.Fatalf("ClaimHost failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected first claim to succeed")
	}

	ok, err = st.ClaimHost(ctx, sessionID, profileIDs[1])
	if err != nil {
		t.Fatalf("ClaimHost failed: %v", err)
	}
	if ok {
		t.Fatal("Expected second claim to be rejected")
	}

	sess, _ := st.GetSession(ctx, sessionID)
	if sess.HostProfileID == nil || *sess.HostProfileID != profileIDs[0] {
		t.Errorf("Expected host %s, got %v", profileIDs[0], sess.HostProfileID)
	}
}

func TestStartSessionOnlyOnce(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, _ := testutil.CreateTestSession(t, st, 2, 1)
	ctx := context.Background()

	ok, err := st.StartSession(ctx, sessionID, time.Now())
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected first start to succeed")
	}

	ok, err = st.StartSession(ctx, sessionID, time.Now())
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if ok {
		t.Fatal("Expected second start to be rejected")
	}

	sess, _ := st.GetSession(ctx, sessionID)
	if !sess.Started {
		t.Error("Session should be marked started")
	}
	if sess.StartedAt == nil {
		t.Error("started_at should be set")
	}
}

func TestGetSessionStats(t *testing.T) {
	st := testutil.SetupTestStore(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 3, 1)
	ctx := context.Background()

	if err := st.IncrementStat(ctx, sessionID, profileIDs[0]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}
	if err := st.IncrementStat(ctx, sessionID, profileIDs[2]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}

	stats, err := st.GetSessionStats(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetSessionStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 lazily created rows, got %d", len(stats))
	}
	for _, s := range stats {
		if s.Tracks != 1 {
			t.Errorf("Expected 1 track for %s, got %d", s.ProfileID, s.Tracks)
		}
	}
}
