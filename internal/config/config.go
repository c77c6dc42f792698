package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/folio/internal/walker"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are joined
// with a double underscore: FOLIO_SERVER__PORT -> server.port.
const EnvPrefix = "FOLIO_"

// DefaultPath is the config file used when none is given.
const DefaultPath = ".folio.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*). A .env file in the working
// directory is loaded first if present; it never overrides variables that
// are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps FOLIO_SITE__OUTPUT_DIR to site.output_dir.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Content.Source == "" {
		return fmt.Errorf("content.source is required")
	}
	if c.Content.Timeout < 0 {
		return fmt.Errorf("content.timeout must be non-negative")
	}
	if c.Content.BaseURL != "" && !strings.HasPrefix(c.Content.BaseURL, "http://") && !strings.HasPrefix(c.Content.BaseURL, "https://") {
		return fmt.Errorf("invalid content.base_url %q: must be an http(s) URL", c.Content.BaseURL)
	}

	if strings.TrimSpace(c.Fallback.Name) == "" {
		return fmt.Errorf("fallback.name is required")
	}

	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}
	if err := walker.ValidatePatterns(c.Site.Include); err != nil {
		return fmt.Errorf("site.include: %w", err)
	}
	if err := walker.ValidatePatterns(c.Site.Exclude); err != nil {
		return fmt.Errorf("site.exclude: %w", err)
	}

	e := c.Effects
	if e.RevealThreshold < 0 || e.RevealThreshold > 1 {
		return fmt.Errorf("effects.reveal_threshold must be between 0 and 1, got %v", e.RevealThreshold)
	}
	if e.StaggerProject < 0 || e.StaggerTimeline < 0 || e.StaggerSkill < 0 {
		return fmt.Errorf("effects stagger delays must be non-negative")
	}
	if e.NavBackgroundAt < 0 || e.NavHideAt < 0 {
		return fmt.Errorf("effects nav offsets must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	return nil
}
