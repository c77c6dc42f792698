package config

import "time"

// DefaultExcludes are glob patterns never copied from the static directory.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/.DS_Store",
	"**/*.swp",
	"**/*~",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Source:  "content.json",
			Timeout: 10 * time.Second,
		},
		Fallback: FallbackConfig{
			Name: "Your Name",
			Role: "Portfolio",
		},
		Site: SiteConfig{
			OutputDir: "public",
			StaticDir: "static",
			Include:   []string{"**"},
			Exclude:   append([]string(nil), DefaultExcludes...),
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
		Effects: EffectsConfig{
			RevealThreshold:    0.12,
			RevealMarginBottom: -50,
			StaggerProject:     0.1,
			StaggerTimeline:    0.1,
			StaggerSkill:       0.08,
			NavBackgroundAt:    80,
			NavHideAt:          400,
			MagneticStrength:   4,
			ParallaxStrength:   20,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
