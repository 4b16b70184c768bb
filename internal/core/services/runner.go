package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.RunOrchestrator = (*Runner)(nil)

// Runner executes one pipeline run: for every configured role it
// aggregates postings, enriches each one when enrichment is enabled, and
// upserts the merged record. Execution is strictly sequential, one
// provider call, one enrichment call, one upsert at a time.
type Runner struct {
	search   driving.SearchService
	enricher driving.Enricher
	repo     driving.JobRepository
	notifier driven.Notifier
	settings *domain.AppSettings

	now func() time.Time
}

// NewRunner creates a run orchestrator. The enricher and notifier may be
// nil when enrichment or alerting is not configured.
func NewRunner(
	search driving.SearchService,
	enricher driving.Enricher,
	repo driving.JobRepository,
	notifier driven.Notifier,
	settings *domain.AppSettings,
) *Runner {
	return &Runner{
		search:   search,
		enricher: enricher,
		repo:     repo,
		notifier: notifier,
		settings: settings,
		now:      time.Now,
	}
}

// RunOnce executes a single run. Enrichment failures are logged per
// posting and the posting is stored without enrichment fields; repository
// faults and configuration errors fail the run.
func (r *Runner) RunOnce(ctx context.Context, filters domain.SearchFilters) (*domain.RunSummary, error) {
	runID := uuid.NewString()
	summary := &domain.RunSummary{RunID: runID, Roles: len(r.settings.Roles)}

	logger.Section("Run " + runID)

	for _, role := range r.settings.Roles {
		if err := r.runRole(ctx, role, filters, summary); err != nil {
			return summary, err
		}
	}

	logger.Info("run %s: %d postings, %d created, %d updated, %d enriched, %d enrichment failures",
		runID, summary.Postings, summary.Created, summary.Updated, summary.Enriched, summary.EnrichErrs)
	return summary, nil
}

func (r *Runner) runRole(
	ctx context.Context,
	role string,
	filters domain.SearchFilters,
	summary *domain.RunSummary,
) error {
	postings, err := r.search.Search(ctx, role, r.settings.Locations, filters)
	if err != nil {
		return fmt.Errorf("search role %q: %w", role, err)
	}

	created := 0
	for _, posting := range postings {
		if r.settings.MaxResultsPerRole > 0 && created >= r.settings.MaxResultsPerRole {
			break
		}

		enrichment := r.enrich(ctx, posting, summary)

		wasCreated, err := r.repo.Upsert(ctx, domain.JobRecord{
			FetchedAt:  r.now().UTC().Format(time.RFC3339),
			Role:       role,
			Title:      posting.Title,
			Source:     posting.Source,
			Link:       posting.Link,
			Metadata:   posting.Metadata,
			Enrichment: enrichment,
		})
		if err != nil {
			return fmt.Errorf("upsert %q: %w", posting.Link, err)
		}

		summary.Postings++
		if wasCreated {
			created++
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	logger.Info("processed role %q (added %d jobs)", role, created)
	return nil
}

// enrich runs AI enrichment for one posting. A failure is logged and the
// posting proceeds without enrichment fields.
func (r *Runner) enrich(ctx context.Context, posting domain.Posting, summary *domain.RunSummary) map[string]string {
	if r.enricher == nil || !r.enricher.Enabled() {
		return nil
	}

	enrichment, err := r.enricher.Enrich(ctx, posting)
	if err != nil {
		logger.Warn("enrichment failed for %s: %v", posting.Link, err)
		summary.EnrichErrs++
		return nil
	}

	summary.Enriched++
	r.maybeAlert(posting, enrichment)
	return enrichment
}

// maybeAlert emits a high-score notification when alerting is enabled and
// the fit score meets the configured threshold.
func (r *Runner) maybeAlert(posting domain.Posting, enrichment map[string]string) {
	if r.notifier == nil || !r.settings.AI.AlertsEnabled {
		return
	}
	score, err := strconv.ParseFloat(enrichment["ai_fit_score"], 64)
	if err != nil {
		return
	}
	if score >= r.settings.AI.AlertThreshold {
		r.notifier.HighScore(posting, score, enrichment)
	}
}
