// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pass-the-aux/ids"
	"github.com/danielhkuo/pass-the-aux/middleware"
	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/store"
	"github.com/danielhkuo/pass-the-aux/turns"
)

type SessionHandler struct {
	store     *store.SQLStore
	scheduler *turns.Scheduler
}

func NewSessionHandler(store *store.SQLStore, scheduler *turns.Scheduler) *SessionHandler {
	return &SessionHandler{store: store, scheduler: scheduler}
}

// CreateProfile handles POST /profiles
func (h *SessionHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}

	profileID, err := ids.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate profile ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	err = h.store.CreateProfile(r.Context(), models.Profile{
		ID:          profileID,
		DisplayName: req.DisplayName,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to insert profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	slog.Info("profile created", "profile_id", profileID, "display_name", req.DisplayName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProfileResponse{
		ProfileID: profileID,
	})
}

// CreateSession handles POST /sessions
// The participant list is the turn order and is fixed here; the turn
// engine is the only writer of the turn fields afterwards.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Participants) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participants is required")
		return
	}
	if hasDuplicates(req.Participants) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participants must be unique")
		return
	}

	tracksPerTurn := req.TracksPerTurn
	if tracksPerTurn <= 0 {
		tracksPerTurn = models.DefaultTracksPerTurn
	}

	sessionID, err := ids.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate session ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	sess := models.Session{
		ID:            sessionID,
		Name:          req.Name,
		TracksPerTurn: tracksPerTurn,
		CreatedAt:     time.Now(),
	}
	if err := h.store.CreateSession(r.Context(), sess, req.Participants); err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created",
		"session_id", sessionID,
		"participants", len(req.Participants),
		"tracks_per_turn", tracksPerTurn,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: sessionID,
	})
}

// GetSession handles GET /sessions/{id}
// Returns the session with its ordered participants and play counts; this
// is what the front end polls for its status view.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess, err := h.store.GetSession(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participants, err := h.store.GetParticipants(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stats, err := h.store.GetSessionStats(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to query session stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionOverviewResponse{
		Session:      *sess,
		Participants: participants,
		Stats:        stats,
	})
}

// ClaimHost handles POST /sessions/{id}/claim-host
// First come, first served: succeeds only while the host seat is empty.
func (h *SessionHandler) ClaimHost(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var req models.ClaimHostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProfileID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "profile_id is required")
		return
	}

	if _, err := h.store.GetSession(r.Context(), sessionID); errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	} else if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	claimed, err := h.store.ClaimHost(r.Context(), sessionID, req.ProfileID)
	if err != nil {
		slog.Error("failed to claim host", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim host")
		return
	}
	if !claimed {
		middleware.ErrorResponse(w, http.StatusConflict, "Host already claimed")
		return
	}

	slog.Info("host claimed", "session_id", sessionID, "profile_id", req.ProfileID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"host_profile_id": req.ProfileID,
	})
}

// StartSession handles POST /sessions/{id}/start
// Only the host starts the session; starting arms the first reminder.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var req models.StartSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess, err := h.store.GetSession(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if sess.HostProfileID == nil || *sess.HostProfileID != req.ProfileID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the host can start the session")
		return
	}

	startedAt := time.Now()
	started, err := h.store.StartSession(r.Context(), sessionID, startedAt)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	if !started {
		middleware.ErrorResponse(w, http.StatusConflict, "Session already started")
		return
	}

	slog.Info("session started", "session_id", sessionID)

	// First reminder for the opening turn holder; best effort, the
	// session is started either way.
	if h.scheduler != nil {
		go func() {
			if _, err := h.scheduler.ArmReminder(context.Background(), sessionID, 0); err != nil {
				slog.Warn("failed to arm opening reminder", "session_id", sessionID, "error", err)
			}
		}()
	}

	middleware.JSONResponse(w, http.StatusOK, models.StartSessionResponse{
		StartedAt: startedAt,
	})
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
