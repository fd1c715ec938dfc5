// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package turns

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/store"
)

// Store is the slice of the turn store the core consumes
type Store interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
	GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error)
	GetStat(ctx context.Context, sessionID, profileID string) (*models.SessionStat, error)
	IncrementStat(ctx context.Context, sessionID, profileID string) error
	SetStatTracks(ctx context.Context, sessionID, profileID string, tracks int64) error
	UpdateSessionTurn(ctx context.Context, id string, prev, next models.TurnState) (bool, error)
}

// ReminderArmer arms the next reminder after a turn transition
type ReminderArmer interface {
	ArmReminder(ctx context.Context, sessionID string, minutes int) (ReminderResult, error)
}

type Outcome string

const (
	OutcomeAdvanced    Outcome = "advanced"
	OutcomeContinued   Outcome = "continued"
	OutcomeNothingToDo Outcome = "nothing_to_do"
)

// ErrTurnConflict means concurrent writers kept invalidating the read turn
// state and the compare-and-swap never landed.
var ErrTurnConflict = errors.New("conflicting turn update")

const casAttempts = 3

// Result is the applied turn transition
type Result struct {
	Outcome           Outcome
	ActiveIndex       int
	TracksThisTurn    int
	CreditedProfileID string
}

// Engine applies turn transitions to a session. All shared state lives in
// the injected store; the engine itself is stateless.
type Engine struct {
	store     Store
	reminders ReminderArmer
}

func NewEngine(store Store, reminders ReminderArmer) *Engine {
	return &Engine{store: store, reminders: reminders}
}

// AdvanceOrContinue applies the trackCompleted rule: if the completed track
// exhausts the holder's quota (or force is set, as on an explicit hand-over),
// the holder is credited one track and the turn passes to the next
// participant; otherwise only the per-turn counter moves. A missing session
// or empty participant list is a benign no-op, never an error.
//
// The session write is a compare-and-swap on the previously read pair,
// retried on conflict. The stat credit happens only after a swap lands, so
// each transition credits exactly once.
func (e *Engine) AdvanceOrContinue(ctx context.Context, sessionID string, force bool) (Result, error) {
	for attempt := 1; ; attempt++ {
		sess, err := e.store.GetSession(ctx, sessionID)
		if errors.Is(err, store.ErrNotFound) {
			return Result{Outcome: OutcomeNothingToDo}, nil
		}
		if err != nil {
			return Result{}, err
		}

		participants, err := e.store.GetParticipants(ctx, sessionID)
		if err != nil {
			return Result{}, err
		}
		if len(participants) == 0 {
			return Result{Outcome: OutcomeNothingToDo}, nil
		}

		prev := models.TurnState{ActiveIndex: sess.ActiveIndex, TracksThisTurn: sess.TracksThisTurn}
		idx, tpt, ttt := normalizeTurn(sess, len(participants))

		var next models.TurnState
		var credited string
		outcome := OutcomeContinued
		if force || ttt+1 >= tpt {
			credited = participants[idx].ProfileID
			next = models.TurnState{ActiveIndex: (idx + 1) % len(participants), TracksThisTurn: 0}
			outcome = OutcomeAdvanced
		} else {
			next = models.TurnState{ActiveIndex: idx, TracksThisTurn: ttt + 1}
		}

		ok, err := e.store.UpdateSessionTurn(ctx, sessionID, prev, next)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			if attempt < casAttempts {
				continue
			}
			return Result{}, ErrTurnConflict
		}

		if credited != "" {
			if err := e.credit(ctx, sessionID, credited); err != nil {
				return Result{}, err
			}
		}

		e.armNextReminder(sessionID)

		return Result{
			Outcome:           outcome,
			ActiveIndex:       next.ActiveIndex,
			TracksThisTurn:    next.TracksThisTurn,
			CreditedProfileID: credited,
		}, nil
	}
}

// credit adds one completed track to the participant's stat row. If the
// store has no atomic increment, fall back to read-then-write; that path
// loses a concurrent credit for the same participant (accepted risk).
func (e *Engine) credit(ctx context.Context, sessionID, profileID string) error {
	err := e.store.IncrementStat(ctx, sessionID, profileID)
	if err == nil || !errors.Is(err, store.ErrIncrementUnsupported) {
		return err
	}

	var tracks int64
	stat, err := e.store.GetStat(ctx, sessionID, profileID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		tracks = 0
	case err != nil:
		return err
	default:
		tracks = stat.Tracks
	}
	return e.store.SetStatTracks(ctx, sessionID, profileID, tracks+1)
}

// armNextReminder fires off reminder arming without joining its outcome
// back into the transition: the turn update is already durable, and a
// failed reminder never rolls it back.
func (e *Engine) armNextReminder(sessionID string) {
	if e.reminders == nil {
		return
	}
	go func() {
		if _, err := e.reminders.ArmReminder(context.Background(), sessionID, 0); err != nil {
			slog.Warn("failed to arm reminder", "session_id", sessionID, "error", err)
		}
	}()
}

// normalizeTurn clamps malformed counters to their documented defaults:
// tracks_per_turn falls back to 1, tracks_this_turn to 0, and an
// out-of-range active_index to 0.
func normalizeTurn(sess *models.Session, participantCount int) (idx, tpt, ttt int) {
	idx = sess.ActiveIndex
	if idx < 0 || idx >= participantCount {
		idx = 0
	}
	tpt = sess.TracksPerTurn
	if tpt <= 0 {
		tpt = models.DefaultTracksPerTurn
	}
	ttt = sess.TracksThisTurn
	if ttt < 0 {
		ttt = 0
	}
	return idx, tpt, ttt
}
