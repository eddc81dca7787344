package render

import (
	"fmt"
	"os"
	"strconv"
)

// Render engines.
const (
	EngineFitz   = "fitz"
	EngineMagick = "magick"
)

// Environment variable names for renderer configuration.
const (
	EnvRenderEngine = "RENDER_ENGINE"
	EnvRenderDPI    = "RENDER_DPI"
)

// Config contains page rasterization configuration.
type Config struct {
	Engine string `toml:"engine"`
	DPI    int    `toml:"dpi"`
}

// Finalize applies defaults, loads environment overrides, and validates the renderer configuration.
func (c *Config) Finalize() error {
	if c.Engine == "" {
		c.Engine = EngineFitz
	}
	if c.DPI == 0 {
		c.DPI = 300
	}

	if v := os.Getenv(EnvRenderEngine); v != "" {
		c.Engine = v
	}
	if v := os.Getenv(EnvRenderDPI); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DPI = n
		}
	}

	if c.Engine != EngineFitz && c.Engine != EngineMagick {
		return fmt.Errorf("invalid engine: %s", c.Engine)
	}
	if c.DPI < 72 || c.DPI > 1200 {
		return fmt.Errorf("dpi must be between 72 and 1200")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Engine != "" {
		c.Engine = overlay.Engine
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
}
