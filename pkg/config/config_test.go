package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimitPerSecond)
		assert.Equal(t, "./sources", cfg.Sources.Dir)
		assert.Equal(t, "0 * * * *", cfg.Sources.RefreshSchedule)
		assert.True(t, cfg.Observability.MetricsEnabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SOURCES_DIR", "/data/sources")
		t.Setenv("SOURCES_REFRESH_SCHEDULE", "")
		t.Setenv("METRICS_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/data/sources", cfg.Sources.Dir)
		assert.Equal(t, "0 * * * *", cfg.Sources.RefreshSchedule)
		assert.False(t, cfg.Observability.MetricsEnabled)
	})

	t.Run("unparseable numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-port")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
	})
}
