package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the demo configuration loaded from environment variables.
type Config struct {
	LogLevel   string // debug, info, warn, error
	StateFile  string
	EmitEvents bool
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		LogLevel:   getEnvOrDefault("FLUX_LOG_LEVEL", "info"),
		StateFile:  getEnvOrDefault("FLUX_STATE_FILE", "flux-state.yaml"),
		EmitEvents: getEnvBoolOrDefault("FLUX_EMIT_EVENTS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.StateFile == "" {
		return fmt.Errorf("FLUX_STATE_FILE must not be empty")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
