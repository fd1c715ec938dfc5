// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pass-the-aux/middleware"
	"github.com/danielhkuo/pass-the-aux/models"
	"github.com/danielhkuo/pass-the-aux/push"
	"github.com/danielhkuo/pass-the-aux/turns"
)

type TurnHandler struct {
	engine    *turns.Engine
	scheduler *turns.Scheduler
}

func NewTurnHandler(engine *turns.Engine, scheduler *turns.Scheduler) *TurnHandler {
	return &TurnHandler{engine: engine, scheduler: scheduler}
}

// TrackComplete handles GET|POST /turns/track-complete
// A track just finished: advance the turn if the holder's quota is spent,
// otherwise count the track against the current turn.
func (h *TurnHandler) TrackComplete(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, false)
}

// HandOver handles GET|POST /turns/hand-over
// Forces the turn to pass regardless of how many tracks the holder has
// played; this is the "Hand over" notification button's callback.
func (h *TurnHandler) HandOver(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, true)
}

func (h *TurnHandler) applyTransition(w http.ResponseWriter, r *http.Request, force bool) {
	sessionID, _ := middleware.TurnParams(r)
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	result, err := h.engine.AdvanceOrContinue(r.Context(), sessionID, force)
	if errors.Is(err, turns.ErrTurnConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Turn state changed concurrently, retry")
		return
	}
	if err != nil {
		slog.Error("failed to apply turn transition", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update turn")
		return
	}

	slog.Info("turn transition applied",
		"session_id", sessionID,
		"outcome", string(result.Outcome),
		"active_index", result.ActiveIndex,
		"tracks_this_turn", result.TracksThisTurn,
	)

	middleware.JSONResponse(w, http.StatusOK, models.TurnResponse{
		Outcome:           string(result.Outcome),
		ActiveIndex:       result.ActiveIndex,
		TracksThisTurn:    result.TracksThisTurn,
		CreditedProfileID: result.CreditedProfileID,
	})
}

// StillMixing handles GET|POST /turns/still-mixing
// The holder confirmed they're still active: re-arm a fresh reminder with
// the default delay. Turn state is never touched here.
func (h *TurnHandler) StillMixing(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.TurnParams(r)
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	h.arm(w, r, sessionID, 0)
}

// Reminder handles GET|POST /turns/reminder
// Arms a reminder for the current holder, with an optional minutes override.
func (h *TurnHandler) Reminder(w http.ResponseWriter, r *http.Request) {
	sessionID, minutes := middleware.TurnParams(r)
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	h.arm(w, r, sessionID, minutes)
}

func (h *TurnHandler) arm(w http.ResponseWriter, r *http.Request, sessionID string, minutes int) {
	result, err := h.scheduler.ArmReminder(r.Context(), sessionID, minutes)
	if errors.Is(err, turns.ErrSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	// The provider's verdict is passed through untouched so the caller
	// sees exactly what OneSignal said.
	var statusErr *push.StatusError
	if errors.As(err, &statusErr) {
		slog.Warn("push provider rejected reminder",
			"session_id", sessionID,
			"status", statusErr.StatusCode,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusErr.StatusCode)
		w.Write([]byte(statusErr.Body))
		return
	}
	if err != nil {
		slog.Error("failed to arm reminder", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to arm reminder")
		return
	}

	slog.Info("reminder armed",
		"session_id", sessionID,
		"outcome", string(result.Outcome),
		"notification_id", result.NotificationID,
	)

	middleware.JSONResponse(w, http.StatusOK, models.ReminderResponse{
		Outcome:        string(result.Outcome),
		NotificationID: result.NotificationID,
	})
}
