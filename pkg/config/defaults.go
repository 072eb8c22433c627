package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultOutput         = OutputVerbose
	DefaultColor          = ColorAuto
	DefaultIndentWidth    = 2
	DefaultLocationLimit  = 4
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvColor   = "CAPREPORT_COLOR"
	EnvNoColor = "NO_COLOR"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:        DefaultOutput,
		Color:         DefaultColor,
		IndentWidth:   DefaultIndentWidth,
		LocationLimit: DefaultLocationLimit,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// NO_COLOR wins over CAPREPORT_COLOR.
func (c *Config) applyEnvironmentOverrides() {
	if mode := os.Getenv(EnvColor); mode != "" {
		c.Color = ColorMode(mode)
	}
	if os.Getenv(EnvNoColor) != "" {
		c.Color = ColorNever
	}
}
