// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ids

import "testing"

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}

	// 16 bytes hex-encoded is 32 characters
	if len(id) != 32 {
		t.Errorf("Expected 32-character ID, got %d", len(id))
	}

	// IDs should be unique
	other, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == other {
		t.Error("Expected distinct IDs from consecutive calls")
	}
}

func TestIsValidPlayerID(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{"canonical UUID", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", true},
		{"uppercase UUID", "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", true},
		{"empty", "", false},
		{"not a UUID", "player-1", false},
		{"truncated", "aaaaaaaa-bbbb-cccc-dddd", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidPlayerID(tc.input); got != tc.valid {
				t.Errorf("IsValidPlayerID(%q) = %v, expected %v", tc.input, got, tc.valid)
			}
		})
	}
}
