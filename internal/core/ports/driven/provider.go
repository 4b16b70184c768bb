package driven

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// Provider fetches job postings from one external search source.
// Implementations must not return an error for ordinary "no results";
// errors are reserved for configuration, auth, and transport failures.
type Provider interface {
	// ID returns the provider registry identifier (e.g. "serpapi_linkedin").
	ID() string

	// Label returns the human-readable source name stamped on postings
	// that do not carry their own.
	Label() string

	// Search returns postings for a role in a location, truncated to limit.
	Search(ctx context.Context, role, location string, limit int, filters domain.SearchFilters) ([]domain.Posting, error)
}
