package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/progress"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build the static portfolio site",
	Long: `Loads the content document, renders it into the page shell, applies
the scroll effects and writes the site to the output directory. If the
content cannot be loaded the page is built with the fallback identity.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output", "", "override the output directory")
	renderCmd.Flags().String("content", "", "override the content source (path or URL)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Site.OutputDir = out
	}
	if src, _ := cmd.Flags().GetString("content"); src != "" {
		cfg.Content.Source = src
	}

	builder := newBuilder(cfg, newLogger())
	builder.SetReporter(progress.NewReporter())

	res, err := builder.Build(cmd.Context())
	if res != nil {
		fmt.Printf("Site written to %s (%d assets, %s)\n", builder.OutputDir(), res.Assets, res.Duration.Round(time.Millisecond))
		if res.Fallback {
			fmt.Printf("Content unavailable, rendered the fallback page: %v\n", res.LoadError)
		}
	}
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	return nil
}
