// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pass the Aux API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, engine, scheduler)

# Endpoints

Health:

	GET /health

Turn coordination (each registered for GET and POST):

	/turns/track-complete - Count a finished track, advance when quota spent
	/turns/hand-over      - Force the turn to pass
	/turns/still-mixing   - Re-arm the reminder, leave state alone
	/turns/reminder       - Arm a reminder with optional minutes override

Session management:

	POST /profiles                 - Create profile
	POST /sessions                 - Create session with turn order
	GET  /sessions/{id}            - Session overview
	POST /sessions/{id}/claim-host - Claim the host seat
	POST /sessions/{id}/start      - Start the session (host only)

Device management:

	POST /sessions/{id}/devices - Register a push player ID

# Handler Initialization

The router creates handler instances with dependency injection:

	turnHandler := handlers.NewTurnHandler(engine, scheduler)
	sessionHandler := handlers.NewSessionHandler(st, scheduler)
	deviceHandler := handlers.NewDeviceHandler(st)

All routes are wrapped with request logging.
*/
package router
