package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	IDStrategySequence = "sequence"
	IDStrategyCount    = "count"
)

// Config holds all configuration for the API and the admin tool.
type Config struct {
	// Server
	Port               string
	CORSAllowedOrigins []string

	// Database. An empty DatabaseURL selects the in-memory store.
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Redis. An empty RedisAddr disables the Redis sequence.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IDStrategy string

	// Logging
	LogLevel  string
	LogFormat string

	SeedOnStart     bool
	LeadRateLimit   int // lead creations per client per minute
	MonitorInterval time.Duration
	APIBaseURL      string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	godotenv.Load()

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		IDStrategy:    strings.ToLower(getEnv("ID_STRATEGY", IDStrategySequence)),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	var err error
	cfg.DBMaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	cfg.DBMaxIdleConns, err = strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.SeedOnStart, err = strconv.ParseBool(getEnv("SEED_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_ON_START: %w", err)
	}
	cfg.LeadRateLimit, err = strconv.Atoi(getEnv("LEAD_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAD_RATE_LIMIT: %w", err)
	}
	cfg.MonitorInterval, err = time.ParseDuration(getEnv("MONITOR_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_INTERVAL: %w", err)
	}

	switch cfg.IDStrategy {
	case IDStrategySequence, IDStrategyCount:
	default:
		return nil, fmt.Errorf("invalid ID_STRATEGY %q: must be %s or %s", cfg.IDStrategy, IDStrategySequence, IDStrategyCount)
	}

	return cfg, nil
}
