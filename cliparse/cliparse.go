package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	BaseURL         string
	OneSignalAppID  string
	OneSignalAPIKey string
	OneSignalURL    string
	ReminderMinutes int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pass-the-aux", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in notification callback links")
	fs.IntVar(&cfg.ReminderMinutes, "reminder-minutes", 0, "Default reminder delay in minutes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OneSignalAppID, "onesignal-app", "", "OneSignal app ID (prefer env)")
	fs.StringVar(&cfg.OneSignalAPIKey, "onesignal-key", "", "OneSignal REST API key (prefer env)")
	fs.StringVar(&cfg.OneSignalURL, "onesignal-url", "", "OneSignal API root (override for testing)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3324 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	if cfg.ReminderMinutes == 0 {
		if minStr := os.Getenv("REMINDER_MINUTES"); minStr != "" {
			minutes, err := strconv.Atoi(minStr)
			if err != nil {
				return Config{}, errors.New("invalid REMINDER_MINUTES env variable")
			}
			cfg.ReminderMinutes = minutes
		} else {
			cfg.ReminderMinutes = 8
		}
	}

	// Secrets - MUST be provided
	if cfg.OneSignalAppID == "" {
		cfg.OneSignalAppID = os.Getenv("ONESIGNAL_APP_ID")
	}
	if cfg.OneSignalAppID == "" {
		return Config{}, errors.New("ONESIGNAL_APP_ID required")
	}

	if cfg.OneSignalAPIKey == "" {
		cfg.OneSignalAPIKey = os.Getenv("ONESIGNAL_API_KEY")
	}
	if cfg.OneSignalAPIKey == "" {
		return Config{}, errors.New("ONESIGNAL_API_KEY required")
	}

	if cfg.OneSignalURL == "" {
		cfg.OneSignalURL = os.Getenv("ONESIGNAL_URL")
	}

	return cfg, nil
}
