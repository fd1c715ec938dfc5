// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/testutil"
)

func TestCreateProfile(t *testing.T) {
	_, _, mux := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/profiles", models.CreateProfileRequest{
		DisplayName: "DJ Shadow",
	}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateProfileResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ProfileID == "" {
		t.Error("Expected a profile ID")
	}
}

func TestCreateProfileRequiresDisplayName(t *testing.T) {
	_, _, mux := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/profiles", models.CreateProfileRequest{}))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCreateSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateSessionRequest
	}{
		{
			name: "missing name",
			req:  models.CreateSessionRequest{Participants: []string{"p1", "p2"}},
		},
		{
			name: "no participants",
			req:  models.CreateSessionRequest{Name: "Friday Night"},
		},
		{
			name: "duplicate participants",
			req:  models.CreateSessionRequest{Name: "Friday Night", Participants: []string{"p1", "p1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, mux := setupServer(t)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions", tt.req))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestCreateSessionDefaultsTracksPerTurn(t *testing.T) {
	st, _, mux := setupServer(t)
	p1 := testutil.CreateTestProfile(t, st, "DJ A")
	p2 := testutil.CreateTestProfile(t, st, "DJ B")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
		Name:         "Friday Night",
		Participants: []string{p1, p2},
	}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateSessionResponse
	testutil.AssertJSON(t, w, &resp)

	sess, err := st.GetSession(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess.TracksPerTurn != models.DefaultTracksPerTurn {
		t.Errorf("Expected default tracks_per_turn %d, got %d", models.DefaultTracksPerTurn, sess.TracksPerTurn)
	}
}

func TestGetSessionOverview(t *testing.T) {
	st, _, mux := setupServer(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 3, 2)
	if err := st.IncrementStat(context.Background(), sessionID, profileIDs[1]); err != nil {
		t.Fatalf("IncrementStat failed: %v", err)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/sessions/"+sessionID, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SessionOverviewResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Session.ID != sessionID {
		t.Errorf("Expected session %s, got %s", sessionID, resp.Session.ID)
	}
	if len(resp.Participants) != 3 {
		t.Fatalf("Expected 3 participants, got %d", len(resp.Participants))
	}
	for i, p := range resp.Participants {
		if p.ProfileID != profileIDs[i] {
			t.Errorf("Participants out of turn order at %d: %s", i, p.ProfileID)
		}
	}
	if len(resp.Stats) != 1 || resp.Stats[0].Tracks != 1 {
		t.Errorf("Unexpected stats: %+v", resp.Stats)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	_, _, mux := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/sessions/missing", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestClaimHost(t *testing.T) {
	st, _, mux := setupServer(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/claim-host", models.ClaimHostRequest{
		ProfileID: profileIDs[0],
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Second claim loses
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/claim-host", models.ClaimHostRequest{
		ProfileID: profileIDs[1],
	}))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestClaimHostUnknownSession(t *testing.T) {
	_, _, mux := setupServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/missing/claim-host", models.ClaimHostRequest{
		ProfileID: "p1",
	}))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestStartSessionHostOnly(t *testing.T) {
	st, _, mux := setupServer(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)

	claimed, err := st.ClaimHost(context.Background(), sessionID, profileIDs[0])
	if err != nil || !claimed {
		t.Fatalf("ClaimHost failed: %v", err)
	}

	// Not the host
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/start", models.StartSessionRequest{
		ProfileID: profileIDs[1],
	}))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// The host
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/start", models.StartSessionRequest{
		ProfileID: profileIDs[0],
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StartSessionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.StartedAt.IsZero() {
		t.Error("Expected started_at to be set")
	}

	// Starting twice conflicts
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/start", models.StartSessionRequest{
		ProfileID: profileIDs[0],
	}))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestStartSessionBeforeHostClaim(t *testing.T) {
	st, _, mux := setupServer(t)
	sessionID, profileIDs := testutil.CreateTestSession(t, st, 2, 1)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions/"+sessionID+"/start", models.StartSessionRequest{
		ProfileID: profileIDs[0],
	}))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}
