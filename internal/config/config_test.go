package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WAREHOUSE_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hoopsight")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/hoopsight", cfg.DatabaseURL)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, "https://stats.nba.com/stats", cfg.StatsBaseURL)
	assert.Equal(t, 14, cfg.BackfillDays)
	assert.Equal(t, 600*time.Millisecond, cfg.BackfillSleep)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hoopsight")
	t.Setenv("API_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BACKFILL_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 30, cfg.BackfillDays)
}

func TestWarehouseDatabaseURLFallback(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WAREHOUSE_DATABASE_URL", "postgres://fallback/db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://fallback/db", cfg.DatabaseURL)
}
