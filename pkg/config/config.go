package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/capreport/internal/logging"
)

// searchNames are the config files looked up under the XDG config directories.
var searchNames = []string{
	"capreport/config.yaml",
	"capreport/config.yml",
	"capreport/config.toml",
}

// Load reads and validates a configuration file. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	log := logging.GetLogger("config")
	log.Debug().Str("path", path).Msg("Loaded configuration")
	return cfg, nil
}

// LoadOrDefault loads path if given, otherwise the first config file found in
// the XDG config directories, otherwise the defaults.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		path = Discover()
	}
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Discover returns the path of the user's config file, or "" if there is none.
func Discover() string {
	for _, name := range searchNames {
		if p, err := xdg.SearchConfigFile(name); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	switch cfg.Output {
	case OutputVerbose, OutputJSON:
	case "":
		cfg.Output = DefaultOutput
	default:
		return fmt.Errorf("output: invalid format %q (must be vverbose or json)", cfg.Output)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		cfg.Color = DefaultColor
	default:
		return fmt.Errorf("color: invalid mode %q (must be auto, always, or never)", cfg.Color)
	}

	if cfg.IndentWidth < 0 {
		return errors.New("indent_width: must not be negative")
	}
	if cfg.IndentWidth == 0 {
		cfg.IndentWidth = DefaultIndentWidth
	}

	if cfg.LocationLimit < 0 {
		return errors.New("location_limit: must not be negative")
	}
	if cfg.LocationLimit == 0 {
		cfg.LocationLimit = DefaultLocationLimit
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case WebhookTriggerOnMatch, WebhookTriggerAlways, WebhookTriggerNever:
	case "":
		wh.Trigger = WebhookTriggerOnMatch
	default:
		return fmt.Errorf("invalid trigger %q (must be on_match, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = Duration(DefaultWebhookTimeout)
	}

	return nil
}

// expandEnvVar expands a value of the form ${VAR} or $VAR.
func expandEnvVar(s string) string {
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		return os.Getenv(s[2 : len(s)-1])
	case strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${"):
		return os.Getenv(s[1:])
	default:
		return s
	}
}
