package driven

import "github.com/custodia-labs/jobradar-cli/internal/core/domain"

// Notifier surfaces noteworthy pipeline events to the user.
type Notifier interface {
	// HighScore reports an enriched posting whose fit score met the
	// configured alert threshold.
	HighScore(posting domain.Posting, score float64, enrichment map[string]string)
}
