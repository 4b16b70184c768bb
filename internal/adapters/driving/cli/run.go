package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/storage/sheets"
	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/services"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
	"github.com/custodia-labs/jobradar-cli/internal/notify"
	"github.com/custodia-labs/jobradar-cli/internal/providers/serpapi"
)

var (
	runNonInteractive bool
	runEvery          int
	runLocations      string
	runDatePosted     string
	runJobType        string
	runKeywords       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the job-search pipeline",
	Long: `Search every enabled provider for each configured role, enrich new
postings with AI commentary when enrichment is enabled, and upsert the
results into the configured backend.

With --every N the pipeline runs immediately and then repeats every N
minutes until interrupted. Without flags the command prompts for search
filters; pass --non-interactive to use defaults instead.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runNonInteractive, "non-interactive", false, "skip filter prompts and use defaults")
	runCmd.Flags().IntVar(&runEvery, "every", 0, "repeat the run every N minutes (0 = run once)")
	runCmd.Flags().StringVar(&runLocations, "locations", "", "comma-separated locations overriding the configured ones")
	runCmd.Flags().StringVar(&runDatePosted, "date-posted", "", "restrict by listing age (any, past_24_hours, past_week, past_month)")
	runCmd.Flags().StringVar(&runJobType, "job-type", "", "restrict by employment type (any, full-time, part-time, contract, internship)")
	runCmd.Flags().StringVar(&runKeywords, "keywords", "", "extra terms appended to every provider query")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if len(settings.Roles) == 0 {
		return fmt.Errorf("%w: no roles configured; add one with 'jobradar roles add'", domain.ErrInvalidConfig)
	}

	filters, locations, err := resolveFilters(cmd, settings.Locations)
	if err != nil {
		return err
	}
	if len(locations) > 0 {
		settings.Locations = locations
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := buildRunner(ctx, settings)
	if err != nil {
		return err
	}
	defer cleanup()

	if runEvery > 0 {
		interval := time.Duration(runEvery) * time.Minute
		cmd.Printf("Running every %d minutes. Press Ctrl+C to stop.\n", runEvery)
		scheduler := services.NewScheduler(runner, interval, filters)
		return scheduler.Start(ctx)
	}

	summary, err := runner.RunOnce(ctx, filters)
	if err != nil {
		return err
	}
	printSummary(cmd, summary)
	return nil
}

// resolveFilters builds search filters and a locations override from
// flags, falling back to an interactive prompt when no filter flags were
// given. An empty locations slice means "keep the configured ones".
func resolveFilters(cmd *cobra.Command, configured []string) (domain.SearchFilters, []string, error) {
	var filters domain.SearchFilters

	if runDatePosted != "" || runJobType != "" || runKeywords != "" || runLocations != "" || runNonInteractive {
		datePosted, err := parseDatePosted(runDatePosted)
		if err != nil {
			return filters, nil, err
		}
		jobType, err := parseJobType(runJobType)
		if err != nil {
			return filters, nil, err
		}
		filters.DatePosted = datePosted
		filters.JobType = jobType
		filters.Keywords = runKeywords
		return filters, splitList(runLocations), nil
	}

	return promptFilters(cmd, configured)
}

func parseDatePosted(value string) (domain.DatePosted, error) {
	if value == "" {
		return domain.DatePostedAny, nil
	}
	d := domain.DatePosted(value)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: unknown date-posted filter %q", domain.ErrInvalidInput, value)
	}
	return d, nil
}

func parseJobType(value string) (domain.JobType, error) {
	if value == "" {
		return domain.JobTypeAny, nil
	}
	j := domain.JobType(value)
	if !j.IsValid() {
		return "", fmt.Errorf("%w: unknown job type %q", domain.ErrInvalidInput, value)
	}
	return j, nil
}

func promptFilters(cmd *cobra.Command, configured []string) (domain.SearchFilters, []string, error) {
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Search Filters")
	cmd.Println("==============")
	cmd.Println()

	cmd.Printf("Locations, comma-separated [%s]: ", strings.Join(configured, ", "))
	locations := splitList(readLine(reader))
	cmd.Println()

	datePostedOptions := []domain.DatePosted{
		domain.DatePostedAny,
		domain.DatePostedPastDay,
		domain.DatePostedPastWeek,
		domain.DatePostedPastMonth,
	}
	cmd.Println("Date posted:")
	for i, opt := range datePostedOptions {
		cmd.Printf("  %d. %s\n", i+1, opt.Description())
	}
	cmd.Print("Choice [1]: ")
	datePosted := datePostedOptions[parseChoice(readLine(reader), len(datePostedOptions), 1)-1]
	cmd.Println()

	jobTypeOptions := []domain.JobType{
		domain.JobTypeAny,
		domain.JobTypeFullTime,
		domain.JobTypePartTime,
		domain.JobTypeContract,
		domain.JobTypeInternship,
	}
	cmd.Println("Job type:")
	for i, opt := range jobTypeOptions {
		cmd.Printf("  %d. %s\n", i+1, opt.String())
	}
	cmd.Print("Choice [1]: ")
	jobType := jobTypeOptions[parseChoice(readLine(reader), len(jobTypeOptions), 1)-1]
	cmd.Println()

	cmd.Print("Extra keywords (optional): ")
	keywords := readLine(reader)
	cmd.Println()

	return domain.SearchFilters{
		DatePosted: datePosted,
		JobType:    jobType,
		Keywords:   keywords,
	}, locations, nil
}

// buildRunner assembles the full pipeline from settings: providers,
// aggregator, row store, repository, enricher, and notifier. The
// returned cleanup closes the row store when it holds resources.
func buildRunner(ctx context.Context, settings *domain.AppSettings) (*services.Runner, func(), error) {
	noop := func() {}

	registry, err := buildProviders(settings)
	if err != nil {
		return nil, noop, err
	}
	aggregator := services.NewAggregator(registry, settings.Providers)

	store, err := buildRowStore(ctx, settings)
	if err != nil {
		return nil, noop, err
	}
	cleanup := noop
	if closer, ok := store.(io.Closer); ok {
		cleanup = func() {
			if cerr := closer.Close(); cerr != nil {
				logger.Warn("failed to close row store: %v", cerr)
			}
		}
	}

	repo := services.NewRepository(store)
	if err := repo.Initialize(ctx); err != nil {
		cleanup()
		return nil, noop, err
	}
	if settings.AI.Enabled {
		if err := repo.EnsureColumns(ctx, domain.EnrichmentKeys); err != nil {
			cleanup()
			return nil, noop, err
		}
	}

	enricher, err := ai.CreateEnricher(settings.AI, promptStore)
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	var notifier driven.Notifier
	if settings.AI.AlertsEnabled {
		notifier = notify.NewLogNotifier()
	}

	return services.NewRunner(aggregator, enricher, repo, notifier, settings), cleanup, nil
}

// buildProviders registers every known provider implementation. The
// shared SerpAPI client is constructed only when a SerpAPI key is
// configured; an enabled provider left unregistered surfaces as a
// configuration error on the first search.
func buildProviders(settings *domain.AppSettings) (*services.ProviderRegistry, error) {
	registry := services.NewProviderRegistry()

	key, timeout := serpAPICredentials(settings)
	if key == "" {
		return registry, nil
	}

	client, err := serpapi.NewClient(serpapi.ClientConfig{
		APIKey:  key,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	if err := registry.Register(serpapi.NewLinkedInProvider(client)); err != nil {
		return nil, err
	}
	if err := registry.Register(serpapi.NewIndeedProvider(client)); err != nil {
		return nil, err
	}
	return registry, nil
}

// serpAPICredentials returns the first configured SerpAPI key and its
// provider's timeout. Both SerpAPI providers share one key and one
// rate-limited client.
func serpAPICredentials(settings *domain.AppSettings) (string, time.Duration) {
	for _, id := range []string{serpapi.LinkedInID, serpapi.IndeedID} {
		ps, ok := settings.Providers[id]
		if !ok || ps.APIKey == "" {
			continue
		}
		return ps.APIKey, ps.Timeout
	}
	return "", 0
}

func buildRowStore(ctx context.Context, settings *domain.AppSettings) (driven.RowStore, error) {
	switch settings.Backend {
	case domain.BackendSheets:
		return sheets.NewRowStore(ctx, sheets.Config{
			SpreadsheetID:   settings.Sheet.SpreadsheetID,
			Tab:             settings.Sheet.Tab,
			CredentialsFile: settings.Sheet.CredentialsFile,
		})
	case domain.BackendSQLite:
		return sqlite.NewRowStore(settings.DataDir)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidConfig, settings.Backend)
	}
}

func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Println("Run complete")
	cmd.Printf("  Roles searched: %d\n", summary.Roles)
	cmd.Printf("  Postings found: %d\n", summary.Postings)
	cmd.Printf("  Rows created:   %d\n", summary.Created)
	cmd.Printf("  Rows updated:   %d\n", summary.Updated)
	if summary.Enriched > 0 || summary.EnrichErrs > 0 {
		cmd.Printf("  Enriched:       %d\n", summary.Enriched)
		cmd.Printf("  Enrich errors:  %d\n", summary.EnrichErrs)
	}
}
