package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabaseDriver     string // "sqlite" or "postgres"
	DatabaseURL        string // file path for sqlite, DSN for postgres
	LogLevel           string
	LogPretty          bool
	BcryptCost         int
	CORSAllowedOrigins []string
	LoginRateLimit     float64 // login attempts per second per client
	LoginRateBurst     int
	EventRetention     time.Duration
	EventPruneSchedule string // cron expression
	Production         bool   // marks the session cookie Secure
	TrustProxy         bool   // honour X-Forwarded-For / X-Real-IP from a fronting proxy
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	logPretty, err := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}
	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	rateLimit, err := strconv.ParseFloat(getEnv("LOGIN_RATE_LIMIT", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	rateBurst, err := strconv.Atoi(getEnv("LOGIN_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}
	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}
	retention, err := time.ParseDuration(getEnv("EVENT_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_RETENTION: %w", err)
	}

	driver := getEnv("DB_DRIVER", "sqlite")
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want sqlite or postgres", driver)
	}

	return &Config{
		ServerPort:         port,
		DatabaseDriver:     driver,
		DatabaseURL:        getEnv("DATABASE_URL", "./contacts.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          logPretty,
		BcryptCost:         bcryptCost,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LoginRateLimit:     rateLimit,
		LoginRateBurst:     rateBurst,
		EventRetention:     retention,
		EventPruneSchedule: getEnv("EVENT_PRUNE_SCHEDULE", "@hourly"),
		Production:         getEnv("APP_ENV", "development") == "production",
		TrustProxy:         trustProxy,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
