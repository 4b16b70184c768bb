package driving

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// Enricher produces AI commentary fields for a posting.
type Enricher interface {
	// Enrich returns a flat, sanitised field mapping for the posting, or
	// an error wrapping domain.ErrEnrichmentFailed once retries are
	// exhausted. When enrichment is disabled it returns an empty map and
	// no error.
	Enrich(ctx context.Context, posting domain.Posting) (map[string]string, error)

	// Enabled reports whether enrichment is active.
	Enabled() bool
}
