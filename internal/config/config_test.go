package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "SEED_SAMPLES", "BROTLI_MIN_LENGTH", "RATE_LIMIT_PER_MINUTE", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.True(t, cfg.SeedSamples)
	assert.Equal(t, 1024, cfg.BrotliMinLength)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEED_SAMPLES", "false")
	t.Setenv("BROTLI_MIN_LENGTH", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.SeedSamples)
	assert.Equal(t, 1024, cfg.BrotliMinLength, "unparseable ints fall back")
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestGetEnvBoolFallback(t *testing.T) {
	t.Setenv("ROSTER_FLAG", "maybe")
	assert.True(t, getEnvBool("ROSTER_FLAG", true))

	t.Setenv("ROSTER_FLAG", "0")
	assert.False(t, getEnvBool("ROSTER_FLAG", true))
}
