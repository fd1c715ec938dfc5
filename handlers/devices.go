// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pass-the-aux/ids"
	"github.com/danielhkuo/pass-the-aux/middleware"
	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/store"
)

type DeviceHandler struct {
	store *store.SQLStore
}

func NewDeviceHandler(store *store.SQLStore) *DeviceHandler {
	return &DeviceHandler{store: store}
}

// RegisterPlayer handles POST /sessions/{id}/devices
// Stores a participant's OneSignal player ID so reminders can reach them.
// The browser-side subscription flow produced the ID; the server only
// keeps it on the participant's stat row.
func (h *DeviceHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var req models.RegisterPlayerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ProfileID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	if !ids.IsValidPlayerID(req.PlayerID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player_id must be a valid OneSignal player ID")
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

	participants, err := h.store.GetParticipants(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !isParticipant(participants, req.ProfileID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "profile_id is not a participant of this session")
		return
	}

	if err := h.store.SetPlayerID(r.Context(), sessionID, req.ProfileID, req.PlayerID); err != nil {
		slog.Error("failed to set player ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	slog.Info("player registered", "session_id", sessionID, "profile_id", req.ProfileID)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterPlayerResponse{
		ProfileID: req.ProfileID,
		PlayerID:  req.PlayerID,
	})
}

func isParticipant(participants []models.Participant, profileID string) bool {
	for _, p := range participants {
		if p.ProfileID == profileID {
			return true
		}
	}
	return false
}
