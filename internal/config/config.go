package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/efoncier/survey-lab/internal/auth"
	"github.com/efoncier/survey-lab/internal/mailer"
	"github.com/efoncier/survey-lab/internal/pipeline"
	"github.com/efoncier/survey-lab/internal/registry"
	"github.com/efoncier/survey-lab/internal/render"
	"github.com/efoncier/survey-lab/internal/storage"
	"github.com/efoncier/survey-lab/pkg/database"
	"github.com/efoncier/survey-lab/pkg/logging"
)

// Environment variable names for root configuration.
const (
	EnvServiceEnv      = "SERVICE_ENV"
	EnvShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"
)

// Config is the root service configuration.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Logging         logging.Config  `toml:"logging"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	Registry        registry.Config `toml:"registry"`
	Mailer          mailer.Config   `toml:"mailer"`
	Renderer        render.Config   `toml:"renderer"`
	Pipeline        pipeline.Config `toml:"pipeline"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
}

// Load reads configuration from the given TOML file, applies an
// environment-specific overlay when SERVICE_ENV is set, and finalizes
// every section.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := readInto(path, cfg); err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlay := &Config{}
		overlayPath := overlayPath(path, env)
		if _, err := os.Stat(overlayPath); err == nil {
			if err := readInto(overlayPath, overlay); err != nil {
				return nil, err
			}
			cfg.Merge(overlay)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func overlayPath(path, env string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.%s%s", name, env, ext))
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.Registry.Merge(&overlay.Registry)
	c.Mailer.Merge(&overlay.Mailer)
	c.Renderer.Merge(&overlay.Renderer)
	c.Pipeline.Merge(&overlay.Pipeline)
	c.API.Merge(&overlay.API)

	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
}

// Finalize applies defaults, loads environment overrides, and validates
// every configuration section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Storage.Finalize(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	if err := c.Registry.Finalize(); err != nil {
		return fmt.Errorf("registry config: %w", err)
	}
	if err := c.Mailer.Finalize(); err != nil {
		return fmt.Errorf("mailer config: %w", err)
	}
	if err := c.Renderer.Finalize(); err != nil {
		return fmt.Errorf("renderer config: %w", err)
	}
	if err := c.Pipeline.Finalize(); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	return nil
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}
