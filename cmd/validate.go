package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and content document without building",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("Config OK (%s)\n", cfgFile)

		loader := content.NewLoader(filepath.Dir(cfgFile), cfg.Content.BaseURL, cfg.Content.Timeout)
		doc, err := loader.Load(cmd.Context(), cfg.Content.Source)
		if err != nil {
			return fmt.Errorf("loading content %s: %w", cfg.Content.Source, err)
		}
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("content %s: %w", cfg.Content.Source, err)
		}

		fmt.Printf("Content OK (%s): %d skills, %d roles, %d projects, %d contact links\n",
			cfg.Content.Source, len(doc.Skills), len(doc.Experience), len(doc.Projects), len(doc.Contact.Links))

		// Render into the shell without writing, to catch missing targets.
		_, res, err := newBuilder(cfg, newLogger()).Compose(cmd.Context())
		if err != nil {
			return fmt.Errorf("rendering into shell: %w", err)
		}
		if res.Fallback {
			return fmt.Errorf("content changed while validating: %w", res.LoadError)
		}
		shell := cfg.Site.Shell
		if shell == "" {
			shell = "built-in shell"
		}
		fmt.Printf("Shell OK (%s): %d elements revealed on scroll\n", shell, res.Effects.Revealed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
