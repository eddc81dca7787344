package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/efoncier/survey-lab/internal/auth/passcode"
)

// Environment variable names for auth configuration.
const (
	EnvAuthTokenSecret = "AUTH_TOKEN_SECRET"
	EnvAuthTokenTTL    = "AUTH_TOKEN_TTL"
	EnvAuthOTPLength   = "AUTH_OTP_LENGTH"
)

// Config contains authentication configuration.
type Config struct {
	TokenSecret string          `toml:"token_secret"`
	TokenTTL    string          `toml:"token_ttl"`
	OTPLength   int             `toml:"otp_length"`
	Passcode    passcode.Config `toml:"passcode"`
}

// TokenTTLDuration parses and returns the token lifetime as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the auth configuration.
func (c *Config) Finalize() error {
	if c.TokenTTL == "" {
		c.TokenTTL = "24h"
	}
	if c.OTPLength == 0 {
		c.OTPLength = 6
	}

	if v := os.Getenv(EnvAuthTokenSecret); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv(EnvAuthOTPLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OTPLength = n
		}
	}

	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret required")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if c.OTPLength < 4 || c.OTPLength > 10 {
		return fmt.Errorf("otp_length must be between 4 and 10")
	}

	return c.Passcode.Finalize()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.TokenSecret != "" {
		c.TokenSecret = overlay.TokenSecret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.OTPLength != 0 {
		c.OTPLength = overlay.OTPLength
	}
	c.Passcode.Merge(&overlay.Passcode)
}
