// Package cli implements the jobradar command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/core/services"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// version is set by Execute from the build-time version in cmd/jobradar.
var version = "dev"

var verbose bool

// Services are initialised by Execute and swapped out in tests.
var (
	settingsService driving.SettingsService
	promptStore     driven.PromptStore
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "Automated job-search aggregation with AI enrichment",
	Long: `jobradar periodically searches job boards for your configured roles,
deduplicates postings by link, optionally enriches each posting with an
AI fit assessment, and upserts the results into a Google Sheets
worksheet or a local SQLite database.

Run 'jobradar settings wizard' to get started, then 'jobradar run'.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute wires the default adapters and runs the root command.
func Execute(ver string) error {
	version = ver

	if settingsService == nil {
		configStore, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("failed to initialise config store: %w", err)
		}
		settingsService = services.NewSettingsService(configStore)
	}
	if promptStore == nil {
		store, err := file.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("failed to initialise prompt store: %w", err)
		}
		promptStore = store
	}

	return rootCmd.Execute()
}
