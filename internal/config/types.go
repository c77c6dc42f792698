package config

import "time"

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Content  ContentConfig  `yaml:"content" koanf:"content"`
	Fallback FallbackConfig `yaml:"fallback" koanf:"fallback"`
	Site     SiteConfig     `yaml:"site" koanf:"site"`
	Render   RenderConfig   `yaml:"render" koanf:"render"`
	Effects  EffectsConfig  `yaml:"effects" koanf:"effects"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
}

// ContentConfig says where the content document comes from.
type ContentConfig struct {
	// Source is a path relative to the config file, an absolute path, or
	// an http(s) URL.
	Source  string        `yaml:"source" koanf:"source"`
	BaseURL string        `yaml:"base_url" koanf:"base_url"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// FallbackConfig is the identity shown when the content cannot be loaded.
type FallbackConfig struct {
	Name string `yaml:"name" koanf:"name"`
	Role string `yaml:"role" koanf:"role"`
}

// SiteConfig controls the generated output.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	// Shell is a custom page shell; empty uses the built-in one.
	Shell     string   `yaml:"shell" koanf:"shell"`
	StaticDir string   `yaml:"static_dir" koanf:"static_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
	Title     string   `yaml:"title" koanf:"title"`
}

// RenderConfig holds renderer options.
type RenderConfig struct {
	Markdown       bool     `yaml:"markdown" koanf:"markdown"`
	HighlightStyle string   `yaml:"highlight_style" koanf:"highlight_style"`
	Accents        []string `yaml:"accents" koanf:"accents"`
}

// EffectsConfig holds the scroll and pointer effect thresholds.
type EffectsConfig struct {
	RevealThreshold    float64 `yaml:"reveal_threshold" koanf:"reveal_threshold"`
	RevealMarginBottom float64 `yaml:"reveal_margin_bottom" koanf:"reveal_margin_bottom"`
	StaggerProject     float64 `yaml:"stagger_project" koanf:"stagger_project"`
	StaggerTimeline    float64 `yaml:"stagger_timeline" koanf:"stagger_timeline"`
	StaggerSkill       float64 `yaml:"stagger_skill" koanf:"stagger_skill"`
	NavBackgroundAt    float64 `yaml:"nav_background_at" koanf:"nav_background_at"`
	NavHideAt          float64 `yaml:"nav_hide_at" koanf:"nav_hide_at"`
	MagneticStrength   float64 `yaml:"magnetic_strength" koanf:"magnetic_strength"`
	ParallaxStrength   float64 `yaml:"parallax_strength" koanf:"parallax_strength"`
}

// ServerConfig holds settings for folio serve.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}
