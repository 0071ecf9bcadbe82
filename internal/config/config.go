// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	FrontendURL  string
	StoreBackend string // "sqlite" (default) or "badger"
	DBPath       string

	// Credentials for the single built-in account. A real deployment
	// replaces this with a pluggable verifier.
	AuthUsername string
	AuthPassword string
	AuthRole     string

	HistoryLimit int

	Generation GenerationConfig
}

// GenerationConfig controls the simulated assistant latency.
type GenerationConfig struct {
	Delay  time.Duration
	Jitter time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		DBPath:       getEnv("DB_PATH", "./data/zanger.db"),
		AuthUsername: getEnv("AUTH_USERNAME", "beka"),
		AuthPassword: getEnv("AUTH_PASSWORD", "2123"),
		AuthRole:     getEnv("AUTH_ROLE", "Главный Юрист РК"),
		HistoryLimit: getEnvInt("HISTORY_LIMIT", 100),
		Generation: GenerationConfig{
			Delay:  getEnvDuration("GENERATION_DELAY", 1500*time.Millisecond),
			Jitter: getEnvDuration("GENERATION_JITTER", 500*time.Millisecond),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.StoreBackend != BackendSQLite && c.StoreBackend != BackendBadger {
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendSQLite, BackendBadger)
	}
	if c.AuthUsername == "" || c.AuthPassword == "" {
		return fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD cannot be empty")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be > 0")
	}
	if c.Generation.Delay < 0 || c.Generation.Jitter < 0 {
		return fmt.Errorf("generation delay and jitter must be >= 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
