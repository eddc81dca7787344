package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// Environment variable names for storage configuration.
const (
	EnvStorageRoot          = "STORAGE_ROOT"
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"
	EnvStoragePublicBaseURL = "STORAGE_PUBLIC_BASE_URL"
)

// Config contains file storage configuration. MaxUploadSize accepts
// human-readable sizes such as "32MB".
type Config struct {
	Root          string `toml:"root"`
	MaxUploadSize string `toml:"max_upload_size"`
	PublicBaseURL string `toml:"public_base_url"`
}

// MaxUploadBytes parses and returns the maximum upload size in bytes.
func (c *Config) MaxUploadBytes() int64 {
	size, _ := units.FromHumanSize(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.PublicBaseURL != "" {
		c.PublicBaseURL = overlay.PublicBaseURL
	}
}

func (c *Config) loadDefaults() {
	if c.Root == "" {
		c.Root = "data/storage"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "32MB"
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "http://localhost:8080/files"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvStorageRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvStoragePublicBaseURL); v != "" {
		c.PublicBaseURL = v
	}
}

func (c *Config) validate() error {
	if _, err := units.FromHumanSize(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.PublicBaseURL = strings.TrimSuffix(c.PublicBaseURL, "/")
	return nil
}
