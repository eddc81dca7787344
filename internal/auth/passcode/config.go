package passcode

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names for passcode configuration.
const (
	EnvPasscodeTTL         = "PASSCODE_TTL"
	EnvPasscodeMaxAttempts = "PASSCODE_MAX_ATTEMPTS"
	EnvPasscodeRedisURL    = "PASSCODE_REDIS_URL"
)

// Config contains passcode store configuration.
type Config struct {
	TTL         string `toml:"ttl"`
	MaxAttempts int    `toml:"max_attempts"`
	RedisURL    string `toml:"redis_url"`
}

// Finalize applies defaults, loads environment overrides, and validates the passcode configuration.
func (c *Config) Finalize() error {
	if c.TTL == "" {
		c.TTL = "5m"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}

	if v := os.Getenv(EnvPasscodeTTL); v != "" {
		c.TTL = v
	}
	if v := os.Getenv(EnvPasscodeMaxAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
	if v := os.Getenv(EnvPasscodeRedisURL); v != "" {
		c.RedisURL = v
	}

	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.RedisURL != "" {
		c.RedisURL = overlay.RedisURL
	}
}
