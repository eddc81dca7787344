package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/efoncier/survey-lab/pkg/middleware"
	"github.com/efoncier/survey-lab/pkg/pagination"
)

// EnvAPIBasePath overrides the API base path.
const EnvAPIBasePath = "API_BASE_PATH"

// APIConfig contains API surface configuration.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, loads environment overrides, and validates the API configuration.
func (c *APIConfig) Finalize() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")

	if err := c.CORS.Finalize(); err != nil {
		return fmt.Errorf("cors config: %w", err)
	}
	if err := c.Pagination.Finalize(); err != nil {
		return fmt.Errorf("pagination config: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
