package internal

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "PORT", "MAX_BODY_BYTES", "METRICS_NAMESPACE", "METRICS_ENABLED", "HTTP_READ_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint16(3000), cfg.Port)
	assert.Equal(t, int64(4096), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "postcode", cfg.Metrics.Namespace)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 20.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.TrustProxy)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("METRICS_NAMESPACE", "pc")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, int64(1024), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "pc", cfg.Metrics.Namespace)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.TrustProxy)
}

func TestNewConfig_FallsBack(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("PORT", "not-a-port")
	t.Setenv("MAX_BODY_BYTES", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, uint16(3000), cfg.Port)
}

func TestNewConfig_RejectsBadLimits(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "-1")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "MAX_BODY_BYTES")

	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("RATE_LIMIT_RPS", "-1")

	_, err = NewConfig()
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
}

func TestNewConfig_FixesBurst(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestNewLogger(t *testing.T) {
	t.Run("prod writes json", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, "prod", "info").Info("parsed", "postcode", "M1  1AA")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "parsed", entry["msg"])
		assert.Equal(t, "M1  1AA", entry["postcode"])
		assert.Equal(t, "ukpostcode", entry["service"])
	})

	t.Run("unknown level logs at info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "dev", "verbose")
		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "dev", "warn")
		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
