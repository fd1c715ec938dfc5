// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pass the Aux API server.

Pass the Aux coordinates round-robin DJ sessions: participants take turns
playing tracks, the server tracks whose turn it is, and push notifications
nudge the active DJ when their time is probably up.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:aux.db ONESIGNAL_APP_ID=... ONESIGNAL_API_KEY=... go run main.go

Or with flags:

	go run main.go -p 3324 -d "postgres://..." -t postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ONESIGNAL_APP_ID (-onesignal-app): OneSignal application ID
  - ONESIGNAL_API_KEY (-onesignal-key): OneSignal REST API key

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - BASE_URL (-base-url): Public URL used in notification callback links
  - REMINDER_MINUTES (-reminder-minutes): Default reminder delay (default: 8)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - turns: Turn advancement engine and reminder scheduler
  - push: OneSignal notification dispatcher
  - store: sqlx-backed persistence (SQLite or PostgreSQL)
  - handlers: HTTP request handlers (turns, sessions, devices)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - db: Schema creation
  - cliparse: Configuration parsing
  - ids: ID generation and player ID validation

See package documentation for each component.
*/
package main
