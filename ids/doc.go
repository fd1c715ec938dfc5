// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ids provides ID generation and validation utilities.

# ID Generation

Random hex IDs for database records:

	id, err := ids.GenerateID(16)  // 32 hex characters

# Player ID Validation

OneSignal player (subscription) IDs are UUIDs; reject anything else
before it reaches the store:

	if !ids.IsValidPlayerID(s) {
		// 400
	}
*/
package ids
