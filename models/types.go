// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Defaults applied when a session carries unset or malformed counters
const (
	DefaultTracksPerTurn = 1
)

// Request types

type CreateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type CreateSessionRequest struct {
	Name          string   `json:"name"`
	TracksPerTurn int      `json:"tracks_per_turn"`
	Participants  []string `json:"participants"` // profile IDs, turn order
}

type ClaimHostRequest struct {
	ProfileID string `json:"profile_id"`
}

type StartSessionRequest struct {
	ProfileID string `json:"profile_id"`
}

type RegisterPlayerRequest struct {
	ProfileID string `json:"profile_id"`
	PlayerID  string `json:"player_id"` // OneSignal subscription ID
}

// Body shape for the turn entry points. The same fields are also accepted
// as query-string parameters.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Minutes   int    `json:"minutes,omitempty"`
}

// Response types

type CreateProfileResponse struct {
	ProfileID string `json:"profile_id"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type TurnResponse struct {
	Outcome           string `json:"outcome"`
	ActiveIndex       int    `json:"active_index"`
	TracksThisTurn    int    `json:"tracks_this_turn"`
	CreditedProfileID string `json:"credited_profile_id,omitempty"`
}

type ReminderResponse struct {
	Outcome        string `json:"outcome"`
	NotificationID string `json:"notification_id,omitempty"`
}

type RegisterPlayerResponse struct {
	ProfileID string `json:"profile_id"`
	PlayerID  string `json:"player_id"`
}

type StartSessionResponse struct {
	StartedAt time.Time `json:"started_at"`
}

type SessionOverviewResponse struct {
	Session      Session       `json:"session"`
	Participants []Participant `json:"participants"`
	Stats        []SessionStat `json:"stats"`
}

// Domain types

type Session struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	HostProfileID  *string    `db:"host_profile_id" json:"host_profile_id,omitempty"`
	Started        bool       `db:"started" json:"started"`
	StartedAt      *time.Time `db:"started_at" json:"started_at,omitempty"`
	TracksPerTurn  int        `db:"tracks_per_turn" json:"tracks_per_turn"`
	TracksThisTurn int        `db:"tracks_this_turn" json:"tracks_this_turn"`
	ActiveIndex    int        `db:"active_index" json:"active_index"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type Profile struct {
	ID          string    `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Participant is one entry in a session's fixed turn order.
type Participant struct {
	SessionID string `db:"session_id" json:"session_id"`
	ProfileID string `db:"profile_id" json:"profile_id"`
	Position  int    `db:"position" json:"position"`
}

// SessionStat is the per-(session, participant) play count, created lazily
// on first credit. PlayerID is the participant's push subscription; absence
// suppresses reminders but not turn logic.
type SessionStat struct {
	SessionID string  `db:"session_id" json:"session_id"`
	ProfileID string  `db:"profile_id" json:"profile_id"`
	Tracks    int64   `db:"tracks" json:"tracks"`
	PlayerID  *string `db:"player_id" json:"player_id,omitempty"`
}

// TurnState is the mutable pair the turn engine owns on a session.
type TurnState struct {
	ActiveIndex    int
	TracksThisTurn int
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
