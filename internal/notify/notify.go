// Package notify emits alerts for noteworthy postings.
package notify

import (
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Ensure LogNotifier implements the interface.
var _ driven.Notifier = (*LogNotifier)(nil)

// LogNotifier writes high-score alerts as structured log lines. It is the
// only delivery channel; anything watching the process output (or a log
// shipper) can react to the lines.
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// HighScore reports a posting whose fit score met the alert threshold.
func (n *LogNotifier) HighScore(posting domain.Posting, score float64, enrichment map[string]string) {
	logger.Alert("high-score match (%.1f): %s (%s)", score, posting.Title, posting.Link)
	if summary := enrichment["ai_summary"]; summary != "" {
		logger.Alert("  summary: %s", summary)
	}
	if angle := enrichment["ai_outreach_angle"]; angle != "" {
		logger.Alert("  outreach: %s", angle)
	}
}
