// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3324)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - BaseURL: Public base URL for notification callback links
  - OneSignalAppID: OneSignal application ID (required)
  - OneSignalAPIKey: OneSignal REST API key (required)
  - OneSignalURL: API root override (used in tests)
  - ReminderMinutes: Default reminder delay (default: 8)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-base-url         Public base URL
	-reminder-minutes Default reminder delay
	-onesignal-app    OneSignal app ID
	-onesignal-key    OneSignal API key
	-onesignal-url    OneSignal API root

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	BASE_URL          → -base-url
	REMINDER_MINUTES  → -reminder-minutes
	ONESIGNAL_APP_ID  → -onesignal-app
	ONESIGNAL_API_KEY → -onesignal-key
	ONESIGNAL_URL     → -onesignal-url

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ONESIGNAL_APP_ID must be provided
  - ONESIGNAL_API_KEY must be provided
  - DATABASE_TYPE must be sqlite or postgres

When BASE_URL is unset it defaults to http://localhost:<port>, which only
works for local testing since notification buttons must reach the server
from the participant's phone.
*/
package cliparse
