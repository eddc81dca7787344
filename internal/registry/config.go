package registry

import (
	"fmt"
	"os"
)

// Registry sources.
const (
	SourceFixture   = "fixture"
	SourceSynthetic = "synthetic"
)

// Environment variable names for registry configuration.
const (
	EnvRegistrySource      = "REGISTRY_SOURCE"
	EnvRegistryFixturePath = "REGISTRY_FIXTURE_PATH"
)

// Config contains identity registry configuration.
type Config struct {
	Source      string `toml:"source"`
	FixturePath string `toml:"fixture_path"`
}

// Finalize applies defaults, loads environment overrides, and validates the registry configuration.
func (c *Config) Finalize() error {
	if c.Source == "" {
		c.Source = SourceSynthetic
	}
	if v := os.Getenv(EnvRegistrySource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvRegistryFixturePath); v != "" {
		c.FixturePath = v
	}

	switch c.Source {
	case SourceSynthetic:
	case SourceFixture:
		if c.FixturePath == "" {
			return fmt.Errorf("fixture_path required for fixture source")
		}
	default:
		return fmt.Errorf("invalid source: %s", c.Source)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.FixturePath != "" {
		c.FixturePath = overlay.FixturePath
	}
}
