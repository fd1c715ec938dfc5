// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/pass-the-aux/db"
	"github.com/danielhkuo/pass-the-aux/ids"
	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/push"
	"github.com/danielhkuo/pass-the-aux/store"
)

// SetupTestStore creates a fresh SQLite-backed store with the full schema.
// Each test gets its own temp database file; no external server needed.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// Single connection keeps concurrent writes from tripping SQLite's
	// file locking during tests
	st.DB().SetMaxOpenConns(1)

	if err := db.CreateSchema(st.DB()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return st
}

// CreateTestProfile inserts a profile and returns its ID
func CreateTestProfile(t *testing.T, st *store.SQLStore, displayName string) string {
	t.Helper()

	profileID, _ := ids.GenerateID(16)
	err := st.CreateProfile(context.Background(), models.Profile{
		ID:          profileID,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return profileID
}

// CreateTestSession creates a session with n participants in turn order and
// returns the session ID and the participant profile IDs.
func CreateTestSession(t *testing.T, st *store.SQLStore, n, tracksPerTurn int) (string, []string) {
	t.Helper()

	profileIDs := make([]string, n)
	for i := range profileIDs {
		profileIDs[i] = CreateTestProfile(t, st, fmt.Sprintf("DJ %c", 'A'+i))
	}

	sessionID, _ := ids.GenerateID(16)
	err := st.CreateSession(context.Background(), models.Session{
		ID:            sessionID,
		Name:          "Test Session",
		TracksPerTurn: tracksPerTurn,
		CreatedAt:     time.Now(),
	}, profileIDs)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID, profileIDs
}

// SetTestPlayerID registers a push subscription for a participant
func SetTestPlayerID(t *testing.T, st *store.SQLStore, sessionID, profileID, playerID string) {
	t.Helper()

	if err := st.SetPlayerID(context.Background(), sessionID, profileID, playerID); err != nil {
		t.Fatalf("Failed to set test player ID: %v", err)
	}
}

// FakeDispatcher records scheduled notifications instead of calling the
// push provider. Set Err to make every dispatch fail with that error.
type FakeDispatcher struct {
	mu        sync.Mutex
	Err       error
	scheduled []push.Notification
}

func (f *FakeDispatcher) Schedule(ctx context.Context, n push.Notification) (push.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return push.Receipt{}, f.Err
	}
	f.scheduled = append(f.scheduled, n)
	return push.Receipt{ID: fmt.Sprintf("notif-%d", len(f.scheduled))}, nil
}

// Scheduled returns a copy of everything dispatched so far
func (f *FakeDispatcher) Scheduled() []push.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]push.Notification, len(f.scheduled))
	copy(out, f.scheduled)
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
