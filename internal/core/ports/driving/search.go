package driving

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// SearchService aggregates postings for one role across all enabled
// providers and locations.
type SearchService interface {
	// Search runs the role against every enabled provider in every
	// location and returns the merged results, deduplicated by link.
	// A single provider failure never fails the overall call.
	Search(ctx context.Context, role string, locations []string, filters domain.SearchFilters) ([]domain.Posting, error)
}
