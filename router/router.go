// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pass-the-aux/handlers"
	"github.com/danielhkuo/pass-the-aux/middleware"
	"github.com/danielhkuo/pass-the-aux/store"
	"github.com/danielhkuo/pass-the-aux/turns"
)

func NewRouter(st *store.SQLStore, engine *turns.Engine, scheduler *turns.Scheduler) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	turnHandler := handlers.NewTurnHandler(engine, scheduler)
	sessionHandler := handlers.NewSessionHandler(st, scheduler)
	deviceHandler := handlers.NewDeviceHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Turn entry points. Registered for GET and POST: notification
	// buttons call back with query strings, API clients post JSON.
	mux.HandleFunc("GET /turns/track-complete", middleware.WithLogging(turnHandler.TrackComplete))
	mux.HandleFunc("POST /turns/track-complete", middleware.WithLogging(turnHandler.TrackComplete))
	mux.HandleFunc("GET /turns/hand-over", middleware.WithLogging(turnHandler.HandOver))
	mux.HandleFunc("POST /turns/hand-over", middleware.WithLogging(turnHandler.HandOver))
	mux.HandleFunc("GET /turns/still-mixing", middleware.WithLogging(turnHandler.StillMixing))
	mux.HandleFunc("POST /turns/still-mixing", middleware.WithLogging(turnHandler.StillMixing))
	mux.HandleFunc("GET /turns/reminder", middleware.WithLogging(turnHandler.Reminder))
	mux.HandleFunc("POST /turns/reminder", middleware.WithLogging(turnHandler.Reminder))

	// Session management
	mux.HandleFunc("POST /profiles", middleware.WithLogging(sessionHandler.CreateProfile))
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/claim-host", middleware.WithLogging(sessionHandler.ClaimHost))
	mux.HandleFunc("POST /sessions/{id}/start", middleware.WithLogging(sessionHandler.StartSession))

	// Device management
	mux.HandleFunc("POST /sessions/{id}/devices", middleware.WithLogging(deviceHandler.RegisterPlayer))

	// Root endpoint. {$} anchors the pattern so unknown paths 404 instead
	// of falling through to the banner.
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pass-the-aux API v1"))
	})

	return mux
}
