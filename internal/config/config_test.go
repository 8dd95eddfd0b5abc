package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Contains(t, cfg.Dashboards.Measles.DataURL, "/api/measles/data")
	assert.Contains(t, cfg.Dashboards.AIDS.ChartsBaseURL, "/api/charts")
	assert.Contains(t, cfg.Dashboards.Malaria.DataURL, "/api/malaria/data")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("MEASLES_DATA_URL", "http://feeds.internal/measles")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "http://feeds.internal/measles", cfg.Dashboards.Measles.DataURL)
}

func TestLoadIgnoresMalformedTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "garbage")

	// A malformed timeout falls back to the default rather than failing.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}
