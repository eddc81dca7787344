package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPipelineMaxConcurrent overrides the number of documents processed
// concurrently.
const EnvPipelineMaxConcurrent = "PIPELINE_MAX_CONCURRENT"

// Config contains pipeline concurrency configuration.
type Config struct {
	MaxConcurrent int `toml:"max_concurrent"`
}

// Finalize applies defaults, loads environment overrides, and validates the pipeline configuration.
func (c *Config) Finalize() error {
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 4
	}

	if v := os.Getenv(EnvPipelineMaxConcurrent); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}

	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be positive")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxConcurrent != 0 {
		c.MaxConcurrent = overlay.MaxConcurrent
	}
}
