// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pass the Aux API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - TurnHandler: Turn transitions and reminder arming
  - SessionHandler: Profiles, session lifecycle (create, claim-host, start)
  - DeviceHandler: Push subscription registration

	turnHandler := handlers.NewTurnHandler(engine, scheduler)

# Turn Entry Points

The four turn routes accept both request shapes - query string (how
notification buttons call back) and JSON body (how API clients post):

	GET|POST /turns/track-complete → TrackComplete (count or advance)
	GET|POST /turns/hand-over      → HandOver (force the turn to pass)
	GET|POST /turns/still-mixing   → StillMixing (re-arm, no state change)
	GET|POST /turns/reminder       → Reminder (arm with optional minutes)

A transition lost to a concurrent writer after retries returns 409. A
reminder rejected by the push provider returns the provider's status code
and body verbatim.

# Session Lifecycle

	POST /profiles                  → CreateProfile
	POST /sessions                  → CreateSession (fixes the turn order)
	GET  /sessions/{id}             → GetSession (overview with stats)
	POST /sessions/{id}/claim-host  → ClaimHost (first come, first served)
	POST /sessions/{id}/start       → StartSession (host only, arms first reminder)

# Device Registration

	POST /sessions/{id}/devices → RegisterPlayer

Stores a participant's OneSignal player ID on their stat row. The ID must
be a UUID and the profile must be a session participant.
*/
package handlers
