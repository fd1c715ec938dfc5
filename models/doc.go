// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateProfileRequest: display_name
  - CreateSessionRequest: name, tracks_per_turn, participants (turn order)
  - ClaimHostRequest: profile_id
  - StartSessionRequest: profile_id
  - RegisterPlayerRequest: profile_id, player_id
  - TurnRequest: session_id, minutes (also accepted as query parameters)

# Response Types

Types for JSON responses:

  - CreateProfileResponse: profile_id
  - CreateSessionResponse: session_id
  - TurnResponse: outcome, active_index, tracks_this_turn, credited_profile_id
  - ReminderResponse: outcome, notification_id
  - RegisterPlayerResponse: profile_id, player_id
  - StartSessionResponse: started_at
  - SessionOverviewResponse: session, participants, stats
  - ErrorResponse: error, message

# Domain Types

Internal data structures with db tags for sqlx scanning:

  - Session: metadata, host, lifecycle, and the two turn counters
  - Profile: a DJ's display name
  - Participant: one slot in a session's fixed turn order
  - SessionStat: per-participant play count and push player ID
  - TurnState: the (active_index, tracks_this_turn) pair the engine swaps

# Constants

	DefaultTracksPerTurn = 1
*/
package models
