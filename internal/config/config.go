package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Vendor API access. Required only when sync is enabled.
	APIURL         string
	ApplicationKey string
	APIKey         string
	StationMAC     string

	SyncEnabled bool
	StartDate   string // first date to backfill, YYYY-MM-DD
	FetchDelay  time.Duration
	HTTPTimeout time.Duration

	DataDir    string
	OutputPath string

	PageTitle    string
	TimezoneName string
	Timezone     *time.Location

	LogLevel  string
	LogFormat string

	// Serve mode.
	HTTPAddr        string
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment (and an optional .env file),
// applying defaults where unset.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         envOrDefault("ECOWITT_API_URL", "https://api.ecowitt.net/api/v3/device/history"),
		ApplicationKey: os.Getenv("ECOWITT_APPLICATION_KEY"),
		APIKey:         os.Getenv("ECOWITT_API_KEY"),
		StationMAC:     os.Getenv("STATION_MAC"),
		SyncEnabled:    envOrDefault("SYNC_ENABLED", "true") == "true",
		StartDate:      os.Getenv("START_DATE"),
		DataDir:        envOrDefault("DATA_DIR", "data"),
		OutputPath:     envOrDefault("OUTPUT_PATH", "index.html"),
		PageTitle:      envOrDefault("PAGE_TITLE", "Météo de la station"),
		TimezoneName:   envOrDefault("TIMEZONE", "Europe/Paris"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		HTTPAddr:       envOrDefault("HTTP_ADDR", ":8080"),
	}

	var err error
	if cfg.FetchDelay, err = parseDuration("FETCH_DELAY", "20s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = parseDuration("REFRESH_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchDelay < 0 {
		return nil, errors.New("FETCH_DELAY must not be negative")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("REFRESH_INTERVAL must be positive")
	}

	cfg.Timezone, err = time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimezoneName, err)
	}

	if cfg.SyncEnabled {
		if cfg.ApplicationKey == "" {
			return nil, errors.New("ECOWITT_APPLICATION_KEY is required when sync is enabled")
		}
		if cfg.APIKey == "" {
			return nil, errors.New("ECOWITT_API_KEY is required when sync is enabled")
		}
		if cfg.StationMAC == "" {
			return nil, errors.New("STATION_MAC is required when sync is enabled")
		}
		if cfg.StartDate == "" {
			return nil, errors.New("START_DATE is required when sync is enabled")
		}
		if _, err := time.Parse("2006-01-02", cfg.StartDate); err != nil {
			return nil, fmt.Errorf("invalid START_DATE %q: %w", cfg.StartDate, err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}
