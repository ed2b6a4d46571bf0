package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ID_STRATEGY", "sequence")
	t.Setenv("LEAD_RATE_LIMIT", "10")
	t.Setenv("MONITOR_INTERVAL", "5s")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://localhost:3000 , ,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, IDStrategySequence, cfg.IDStrategy)
	assert.Equal(t, 10, cfg.LeadRateLimit)
	assert.Equal(t, 5*time.Second, cfg.MonitorInterval)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ID_STRATEGY", "uuid")
	_, err := Load()
	assert.ErrorContains(t, err, "ID_STRATEGY")

	t.Setenv("ID_STRATEGY", "COUNT")
	t.Setenv("MONITOR_INTERVAL", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "MONITOR_INTERVAL")

	t.Setenv("MONITOR_INTERVAL", "1s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, IDStrategyCount, cfg.IDStrategy)
}
