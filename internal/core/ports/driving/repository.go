package driving

import (
	"context"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// JobRepository upserts merged job records into the row store, keyed by
// link. It owns header/schema evolution: dynamic columns discovered from
// record payloads are appended to the header, never removed or reordered.
type JobRepository interface {
	// Initialize reads the full backend content, reconciles the stored
	// header with the base header, and builds the link index. Must be
	// called once before any other operation.
	Initialize(ctx context.Context) error

	// EnsureColumns registers columns for the given dynamic keys,
	// rewriting the stored header only when something was added.
	// Idempotent.
	EnsureColumns(ctx context.Context, keys []string) error

	// Upsert inserts or updates the record's row by link. Returns true
	// when a new row was created, false when an existing row was updated
	// in place. An empty link is an error wrapping domain.ErrInvalidInput.
	Upsert(ctx context.Context, record domain.JobRecord) (bool, error)

	// HasLink reports whether a row exists for link. Pure in-memory
	// lookup; does not touch the backend.
	HasLink(link string) bool
}
