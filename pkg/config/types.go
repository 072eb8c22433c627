// Package config provides configuration loading and validation for capreport.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Output is the default report format (vverbose, json).
	Output string `yaml:"output" toml:"output"`

	// Color controls ANSI emphasis in the text report.
	Color ColorMode `yaml:"color" toml:"color"`

	// IndentWidth is the number of spaces per nesting level of a match tree.
	IndentWidth int `yaml:"indent_width" toml:"indent_width"`

	// LocationLimit is how many locations a feature line lists before
	// summarising the rest.
	LocationLimit int `yaml:"location_limit" toml:"location_limit"`

	// ShowLibraryRules includes library and subscope rules in reports.
	ShowLibraryRules bool `yaml:"show_library_rules" toml:"show_library_rules"`

	// Rules restricts reports to the named rules. Empty means all rules.
	Rules []string `yaml:"rules,omitempty" toml:"rules,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty" toml:"webhooks,omitempty"`
}

// Output formats.
const (
	OutputVerbose = "vverbose"
	OutputJSON    = "json"
)

// ColorMode decides when the text report is coloured.
type ColorMode string

const (
	// ColorAuto colours output written to a terminal (default).
	ColorAuto ColorMode = "auto"
	// ColorAlways colours output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever disables colour.
	ColorNever ColorMode = "never"
)

// Enabled reports whether colour should be used for a destination.
func (m ColorMode) Enabled(isTerminal bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnMatch fires only when at least one capability matched (default).
	WebhookTriggerOnMatch WebhookTrigger = "on_match"
	// WebhookTriggerAlways fires after every rendered document.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives report summaries.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url" toml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty" toml:"token,omitempty"`

	// Trigger defaults to "on_match".
	Trigger WebhookTrigger `yaml:"trigger,omitempty" toml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout Duration `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// Duration is a time.Duration written as "10s" in both YAML and TOML.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
