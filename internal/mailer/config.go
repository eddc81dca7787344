package mailer

import (
	"fmt"
	"os"
	"strconv"
)

// Mailer transports.
const (
	TransportSMTP = "smtp"
	TransportLog  = "log"
)

// Environment variable names for mailer configuration.
const (
	EnvMailerTransport = "MAILER_TRANSPORT"
	EnvMailerHost      = "MAILER_HOST"
	EnvMailerPort      = "MAILER_PORT"
	EnvMailerUsername  = "MAILER_USERNAME"
	EnvMailerPassword  = "MAILER_PASSWORD"
	EnvMailerFrom      = "MAILER_FROM"
)

// Config contains mail delivery configuration.
type Config struct {
	Transport string `toml:"transport"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	From      string `toml:"from"`
}

// Finalize applies defaults, loads environment overrides, and validates the mailer configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Transport != "" {
		c.Transport = overlay.Transport
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
}

func (c *Config) loadDefaults() {
	if c.Transport == "" {
		c.Transport = TransportLog
	}
	if c.Port == 0 {
		c.Port = 587
	}
	if c.From == "" {
		c.From = "no-reply@survey-lab.local"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvMailerTransport); v != "" {
		c.Transport = v
	}
	if v := os.Getenv(EnvMailerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvMailerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvMailerUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvMailerPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvMailerFrom); v != "" {
		c.From = v
	}
}

func (c *Config) validate() error {
	switch c.Transport {
	case TransportLog:
	case TransportSMTP:
		if c.Host == "" {
			return fmt.Errorf("host required for smtp transport")
		}
	default:
		return fmt.Errorf("invalid transport: %s", c.Transport)
	}
	return nil
}
