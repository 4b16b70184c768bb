package driving

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// RunOrchestrator executes one full pipeline run: aggregate postings for
// every configured role, enrich them, and upsert the merged records.
type RunOrchestrator interface {
	// RunOnce executes a single run and returns its summary.
	// Per-posting enrichment failures are logged and skipped; only
	// configuration and repository faults fail the run.
	RunOnce(ctx context.Context, filters domain.SearchFilters) (*domain.RunSummary, error)
}
