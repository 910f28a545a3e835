// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Season constants
// --------------------------------------------------------------------------

const (
	// CurrentSeason is the default season label used when a caller does not
	// specify one. Season labels follow the provider's "YYYY-YY" convention.
	CurrentSeason = "2025-26"

	// RegularSeasonPrefix is the leading substring of provider game IDs that
	// identifies regular-season games (e.g. "0022500123"). Preseason,
	// playoff, and all-star games carry different prefixes.
	RegularSeasonPrefix = "002"

	// SeasonTypeRegular is the season type passed to game discovery.
	SeasonTypeRegular = "Regular Season"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches internal/db/schema.go
// --------------------------------------------------------------------------

const (
	TeamsTable           = "teams"
	PlayersTable         = "players"
	GamesTable           = "games"
	PlayerGameStatsTable = "player_game_stats"
	StandingsTable       = "standings_current"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound API)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream stats provider
	StatsBaseURL        string
	StatsTimeout        time.Duration
	StatsRequestsPerMin int

	// Backfill defaults
	BackfillDays  int
	BackfillSleep time.Duration

	// Summarizer (natural-language Q&A)
	SummarizerURL    string
	SummarizerAPIKey string
	SummarizerModel  string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("WAREHOUSE_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or WAREHOUSE_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		StatsBaseURL:        envOr("STATS_BASE_URL", "https://stats.nba.com/stats"),
		StatsTimeout:        time.Duration(envInt("STATS_TIMEOUT_SECONDS", 60)) * time.Second,
		StatsRequestsPerMin: envInt("STATS_REQUESTS_PER_MINUTE", 60),

		BackfillDays:  envInt("BACKFILL_DAYS", 14),
		BackfillSleep: time.Duration(envInt("BACKFILL_SLEEP_MS", 600)) * time.Millisecond,

		SummarizerURL:    envOr("SUMMARIZER_URL", ""),
		SummarizerAPIKey: envOr("SUMMARIZER_API_KEY", ""),
		SummarizerModel:  envOr("SUMMARIZER_MODEL", "gpt-4o-mini"),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
