package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/folio/internal/content"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// .folio.yml and writes a starter content document if none exists.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to folio! Let's set up your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Identity, used for the starter content and as the fallback.
	namePrompt := promptui.Prompt{
		Label: "Your name",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name cannot be empty")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	rolePrompt := promptui.Prompt{
		Label:   "Your role",
		Default: cfg.Fallback.Role,
	}
	role, err := rolePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("role: %w", err)
	}

	// 2. Where the content lives.
	sourcePrompt := promptui.Select{
		Label: "Content source",
		Items: []string{
			"local file (content.json next to .folio.yml)",
			"remote URL",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content source: %w", err)
	}
	if sourceIdx == 1 {
		urlPrompt := promptui.Prompt{
			Label: "Content URL",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return errors.New("must be an http(s) URL")
				}
				return nil
			},
		}
		cfg.Content.Source, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("content url: %w", err)
		}
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.Site.OutputDir,
	}
	cfg.Site.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Extra exclude patterns for static assets.
	excludePrompt := promptui.Prompt{
		Label:   "Extra static exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Site.Exclude = append(cfg.Site.Exclude, splitAndTrim(excludeStr)...)
	}

	// 5. Markdown in trusted fields.
	mdPrompt := promptui.Select{
		Label: "Treat descriptions as Markdown?",
		Items: []string{"no (raw HTML)", "yes (Markdown with inline HTML)"},
	}
	mdIdx, _, err := mdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("markdown selection: %w", err)
	}
	cfg.Render.Markdown = mdIdx == 1

	cfg.Fallback.Name = strings.TrimSpace(name)
	cfg.Fallback.Role = role
	cfg.Site.Title = cfg.Fallback.Name

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)

	if sourceIdx == 0 {
		if _, err := os.Stat(cfg.Content.Source); os.IsNotExist(err) {
			if err := content.Starter(cfg.Fallback.Name, role).WriteFile(cfg.Content.Source); err != nil {
				return nil, err
			}
			fmt.Printf("Starter content written to %s\n", cfg.Content.Source)
		}
	}
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
