package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	LogLevel  string
	Port      uint16
	HTTP      HTTPConfig
	Metrics   MetricsConfig
	RateLimit RateLimitConfig
}

// HTTPConfig holds server limits and timeouts.
type HTTPConfig struct {
	// MaxBodyBytes caps POST bodies on API routes.
	MaxBodyBytes int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name (e.g. "postcode_http_requests_total").
	Namespace string
	Enabled   bool
}

// RateLimitConfig holds per-client limits for the API routes.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int

	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP instead of the
	// connection address. Enable only behind a proxy that sets them.
	TrustProxy bool
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn(".env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvUint16("PORT", 3000),
		HTTP: HTTPConfig{
			MaxBodyBytes:    getEnvInt64("MAX_BODY_BYTES", 4096),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "postcode"),
			Enabled:   getEnvBool("METRICS_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:             int(getEnvInt64("RATE_LIMIT_BURST", 40)),
			TrustProxy:        getEnvBool("TRUST_PROXY", false),
		},
	}

	return cfg, cfg.validate()
}

// validate falls back to defaults for soft settings and rejects values the
// server cannot start with.
func (cfg *Config) validate() error {
	if cfg.Env != "dev" && cfg.Env != "prod" {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Port == 0 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %g", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.Burst < 1 {
		slog.Default().Warn("Invalid rate limit burst. Using default: 40", slog.Int("value", cfg.RateLimit.Burst))
		cfg.RateLimit.Burst = 40
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint16(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(value, 10, 16); err == nil {
			return uint16(n)
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
