// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package turns

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/danielhkuo/pass-the-aux/push"
	"github.com/danielhkuo/pass-the-aux/store"
)

// DefaultReminderMinutes is the delay used when a caller passes no delay
// or a non-positive one; clamped at this boundary rather than rejected.
const DefaultReminderMinutes = 8

// ErrSessionNotFound is the hard not-found for reminder arming. Unlike the
// engine's benign no-op, the caller here needs to distinguish it.
var ErrSessionNotFound = errors.New("session not found")

const (
	OutcomeScheduled      Outcome = "scheduled"
	OutcomeNoParticipants Outcome = "no_participants"
	OutcomeNoPlayerID     Outcome = "no_player_id"
)

// ReminderResult describes what arming did: a scheduled notification with
// its provider ID, or a soft skip with the reason.
type ReminderResult struct {
	Outcome        Outcome
	NotificationID string
}

// Scheduler computes and dispatches "Still mixing?" reminders for the
// current turn holder.
type Scheduler struct {
	store          Store
	dispatcher     push.Dispatcher
	baseURL        string
	defaultMinutes int
}

func NewScheduler(store Store, dispatcher push.Dispatcher, baseURL string, defaultMinutes int) *Scheduler {
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultReminderMinutes
	}
	return &Scheduler{
		store:          store,
		dispatcher:     dispatcher,
		baseURL:        baseURL,
		defaultMinutes: defaultMinutes,
	}
}

// ArmReminder schedules a push to the active participant's device for
// now + minutes, carrying "Still mixing" and "Hand over" action buttons
// that call back into the turn entry points. Missing optional data (no
// participants, no registered player) is a soft skip with zero dispatches.
//
// An earlier reminder that is still pending at the provider is not
// retracted; overlapping reminders may fire.
func (s *Scheduler) ArmReminder(ctx context.Context, sessionID string, minutes int) (ReminderResult, error) {
	if minutes <= 0 {
		minutes = s.defaultMinutes
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return ReminderResult{}, ErrSessionNotFound
	}
	if err != nil {
		return ReminderResult{}, err
	}

	participants, err := s.store.GetParticipants(ctx, sessionID)
	if err != nil {
		return ReminderResult{}, err
	}
	if len(participants) == 0 {
		return ReminderResult{Outcome: OutcomeNoParticipants}, nil
	}

	idx := sess.ActiveIndex
	if idx < 0 || idx >= len(participants) {
		idx = 0
	}
	active := participants[idx]

	stat, err := s.store.GetStat(ctx, sessionID, active.ProfileID)
	if errors.Is(err, store.ErrNotFound) {
		return ReminderResult{Outcome: OutcomeNoPlayerID}, nil
	}
	if err != nil {
		return ReminderResult{}, err
	}
	if stat.PlayerID == nil || *stat.PlayerID == "" {
		return ReminderResult{Outcome: OutcomeNoPlayerID}, nil
	}

	n := push.Notification{
		PlayerIDs: []string{*stat.PlayerID},
		Title:     "Still mixing?",
		Body:      fmt.Sprintf("It's been %d min. Keep going or hand over?", minutes),
		Buttons: []push.Button{
			{ID: "still", Label: "Still mixing", URL: s.callbackURL("still-mixing", sessionID)},
			{ID: "handover", Label: "Hand over", URL: s.callbackURL("hand-over", sessionID)},
		},
		SendAfter: time.Now().Add(time.Duration(minutes) * time.Minute),
	}

	receipt, err := s.dispatcher.Schedule(ctx, n)
	if err != nil {
		return ReminderResult{}, err
	}
	return ReminderResult{Outcome: OutcomeScheduled, NotificationID: receipt.ID}, nil
}

func (s *Scheduler) callbackURL(action, sessionID string) string {
	return s.baseURL + "/turns/" + action + "?session_id=" + url.QueryEscape(sessionID)
}
