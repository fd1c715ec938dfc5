package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/pass-the-aux/cliparse"
	"github.com/danielhkuo/pass-the-aux/db"
	"github.com/danielhkuo/pass-the-aux/push"
	"github.com/danielhkuo/pass-the-aux/router"
	"github.com/danielhkuo/pass-the-aux/store"
	"github.com/danielhkuo/pass-the-aux/turns"
)

func main() {
	var err error

	// Load .env if present (dev convenience; real env wins)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the turn store (SQLite by default, Postgres via -t)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	st, err := store.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Verify connection
	if err := st.DB().Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(st.DB()); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire the core: dispatcher -> scheduler -> engine
	dispatcher := push.NewOneSignalClient(cfg.OneSignalAppID, cfg.OneSignalAPIKey, cfg.OneSignalURL)
	scheduler := turns.NewScheduler(st, dispatcher, cfg.BaseURL, cfg.ReminderMinutes)
	engine := turns.NewEngine(st, scheduler)

	// Create router
	mux := router.NewRouter(st, engine, scheduler)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
