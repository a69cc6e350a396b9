package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":     "postgres://localhost:5432/shipquote",
		"REDIS_URL":        "redis://localhost:6379/0",
		"DISTANCE_API_URL": "https://matrix.example.com",
		// unset everything optional so defaults are observable
		"FALLBACK_RATE":  "",
		"ADJUST_FOR_VAT": "",
		"ENABLE_CACHING": "",
		"CACHE_TTL":      "",
		"DEBUG_MODE":     "",
		"PORT":           "",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Zero(t, cfg.FallbackRate)
	require.False(t, cfg.AdjustForVAT)
	require.True(t, cfg.EnableCaching)
	require.Equal(t, 6*time.Hour, cfg.CacheTTL)
	require.Equal(t, 5*time.Second, cfg.DistanceTimeout)
	require.Equal(t, 3, cfg.DistanceMaxAttempts)
	require.Equal(t, 10, cfg.BreakerMinRequests)
	require.InDelta(t, 0.5, cfg.BreakerFailureRatio, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["FALLBACK_RATE"] = "750"
	env["ADJUST_FOR_VAT"] = "true"
	env["ENABLE_CACHING"] = "false"
	env["CACHE_TTL"] = "2h"
	env["PORT"] = "9090"

	cfg, err := LoadForTests(env)
	require.NoError(t, err)

	require.EqualValues(t, 750, cfg.FallbackRate)
	require.True(t, cfg.AdjustForVAT)
	require.False(t, cfg.EnableCaching)
	require.Equal(t, 2*time.Hour, cfg.CacheTTL)
	require.Equal(t, ":9090", cfg.HTTPAddr())
}

func TestLoadRequiresCoreSettings(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "DISTANCE_API_URL"} {
		env := baseEnv()
		env[key] = ""
		_, err := LoadForTests(env)
		require.Error(t, err, key)
	}
}

func TestLoadRejectsNegativeFallback(t *testing.T) {
	env := baseEnv()
	env["FALLBACK_RATE"] = "-100"
	_, err := LoadForTests(env)
	require.Error(t, err)
}
