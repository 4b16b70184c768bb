package domain

import "strings"

// Base columns always occupy the leading header positions, in this order.
// They are never reordered or removed. Dynamic columns discovered from
// metadata and enrichment payloads are appended after them.
var BaseHeader = []string{
	"Fetched At (UTC)",
	"Role",
	"Job Title",
	"Source",
	"Link",
}

// EnrichmentKeys are the canonical enrichment columns ensured at startup so
// they keep stable positions even before the first enriched posting arrives.
var EnrichmentKeys = []string{
	"ai_fit_score",
	"ai_summary",
	"ai_outreach_angle",
}

// SanitizeKey normalises a free-form payload key into a column identifier:
// trimmed, lower-cased, with spaces and hyphens folded to underscores.
// Sanitisation is idempotent. Returns "" for keys that normalise to nothing.
func SanitizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "-", "_")
	return k
}

// HeaderToKey derives the lookup key for a display label.
// "Ai Fit Score" -> "ai_fit_score".
func HeaderToKey(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "_")
}

// KeyToLabel derives a display label from a column identifier.
// "ai_fit_score" -> "Ai Fit Score". Collisions with existing labels are
// resolved by the repository, not here.
func KeyToLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", "_"), "_")
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(parts, " ")
}
