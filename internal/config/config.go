package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all dashboard configuration, read from the environment with a
// .env file as an optional source.
type Config struct {
	Addr       string // HTTP listen address
	BackendURL string // base URL of the tailoring REST API
	DBPath     string // SQLite activity log

	RedisAddr     string // empty: in-memory session store
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration
	PageSize   int           // initial customers-per-page
	Debounce   time.Duration // search quiet period

	// Capability flags for the two dashboard variants.
	SupportsPagination bool
	SupportsDelete     bool
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	debounce, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE", "300ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE: %w", err)
	}

	cfg := &Config{
		Addr:               getEnv("ATELIER_ADDR", ":8080"),
		BackendURL:         getEnv("BACKEND_URL", ""),
		DBPath:             getEnv("DB_PATH", "atelier.db"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		SessionTTL:         sessionTTL,
		PageSize:           getEnvAsInt("PAGE_SIZE", 10),
		Debounce:           debounce,
		SupportsPagination: getEnvAsBool("SUPPORTS_PAGINATION", true),
		SupportsDelete:     getEnvAsBool("SUPPORTS_DELETE", true),
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
