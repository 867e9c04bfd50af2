// Package config provides environment-driven configuration for omopgraph.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL      Secret
	Schema           string
	Port             string
	ListenHost       string
	MetricsPort      string
	CORSOrigins      []string
	LogLevel         string
	DBMaxConns       int32
	TraverseTimeout  time.Duration
	TraverseMaxSteps int
	MaxTraverseDepth int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		Schema:      envOrDefault("OMOP_SCHEMA", "cdm"),
		Port:        envOrDefault("PORT", "8080"),
		ListenHost:  envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort: envOrDefault("METRICS_PORT", "9091"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
	}

	maxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "5"))
	if err != nil || maxConns < 1 || maxConns > 100 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be an integer between 1 and 100")
	}
	cfg.DBMaxConns = int32(maxConns) //nolint:gosec // bounded above.

	timeout, err := time.ParseDuration(envOrDefault("TRAVERSE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("TRAVERSE_TIMEOUT must be a duration such as 30s: %w", err)
	}
	cfg.TraverseTimeout = timeout

	if cfg.TraverseMaxSteps, err = strconv.Atoi(envOrDefault("TRAVERSE_MAX_STEPS", "100000")); err != nil {
		return nil, fmt.Errorf("TRAVERSE_MAX_STEPS must be an integer: %w", err)
	}

	if cfg.MaxTraverseDepth, err = strconv.Atoi(envOrDefault("MAX_TRAVERSE_DEPTH", "20")); err != nil {
		return nil, fmt.Errorf("MAX_TRAVERSE_DEPTH must be an integer: %w", err)
	}

	origins := envOrDefault("CORS_ORIGINS", "*")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
