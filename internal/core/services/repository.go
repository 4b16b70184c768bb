package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Ensure Repository implements the interface.
var _ driving.JobRepository = (*Repository)(nil)

// Repository upserts job records into a row-oriented backend, keyed by
// link. It owns the header: base columns stay in fixed leading positions,
// dynamic columns discovered from metadata and enrichment payloads are
// appended in first-seen order and never removed. Column order is stable
// across runs; re-initialisation reconstructs the same order from the
// stored header, so historical rows stay valid.
//
// One process instance is assumed. The in-memory link index is not safe
// against concurrent external mutation of the backend.
type Repository struct {
	store driven.RowStore

	header     []string
	keyToLabel map[string]string
	labelToKey map[string]string
	rowsByLink map[string]indexedRow
	rowCount   int
}

type indexedRow struct {
	number int
	cells  []string
}

// NewRepository creates a repository over the given row store.
// Initialize must be called before any other operation.
func NewRepository(store driven.RowStore) *Repository {
	return &Repository{store: store}
}

// Initialize reads the full backend content, derives the effective header,
// and builds the link index. Callers that enrich postings should follow up
// with EnsureColumns(domain.EnrichmentKeys) so the canonical enrichment
// columns get stable positions before the first enriched posting arrives.
func (r *Repository) Initialize(ctx context.Context) error {
	existing, err := r.store.GetAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read backend: %w", err)
	}

	r.keyToLabel = make(map[string]string)
	r.labelToKey = make(map[string]string)
	r.rowsByLink = make(map[string]indexedRow)

	if len(existing) == 0 {
		r.header = append([]string(nil), domain.BaseHeader...)
		r.mapHeader()
		if err := r.writeHeader(ctx); err != nil {
			return err
		}
		r.rowCount = 1 // header row
		return nil
	}

	stored := existing[0]
	r.header = prepareHeader(stored)
	r.mapHeader()
	if !equalRows(r.header, stored) {
		if err := r.writeHeader(ctx); err != nil {
			return err
		}
	}
	r.rowCount = len(existing)
	r.buildIndex(existing)
	return nil
}

// EnsureColumns registers a column for every dynamic key not yet known.
// Display labels are derived by title-casing the key; collisions with
// existing labels are resolved with a numeric suffix ("Label 2", "Label 3",
// ...). The stored header row is rewritten only when a column was added.
// Idempotent.
func (r *Repository) EnsureColumns(ctx context.Context, keys []string) error {
	added := false
	for _, raw := range keys {
		key := domain.SanitizeKey(raw)
		if key == "" {
			continue
		}
		if _, known := r.keyToLabel[key]; known {
			continue
		}

		label := domain.KeyToLabel(key)
		base := label
		for suffix := 2; r.labelExists(label); suffix++ {
			label = fmt.Sprintf("%s %d", base, suffix)
		}

		r.header = append(r.header, label)
		r.keyToLabel[key] = label
		r.labelToKey[label] = key
		added = true
		logger.Debug("added column %q for key %q", label, key)
	}

	if !added {
		return nil
	}
	return r.writeHeader(ctx)
}

// Upsert inserts or updates the record's row by link. Returns true when a
// new row was created, false when an existing row was updated in place.
func (r *Repository) Upsert(ctx context.Context, record domain.JobRecord) (bool, error) {
	if record.Link == "" {
		return false, fmt.Errorf("%w: a job link is required to upsert a record", domain.ErrInvalidInput)
	}

	dynamic := mergeDynamicFields(record.Metadata, record.Enrichment)
	if err := r.EnsureColumns(ctx, mapKeys(dynamic)); err != nil {
		return false, err
	}

	row := r.composeRow(record, dynamic)

	if existing, ok := r.rowsByLink[record.Link]; ok {
		if err := r.store.Update(ctx, existing.number, [][]string{row}); err != nil {
			return false, fmt.Errorf("update row %d: %w", existing.number, err)
		}
		r.rowsByLink[record.Link] = indexedRow{number: existing.number, cells: row}
		return false, nil
	}

	if err := r.store.AppendRow(ctx, row); err != nil {
		return false, fmt.Errorf("append row: %w", err)
	}
	r.rowCount++
	r.rowsByLink[record.Link] = indexedRow{number: r.rowCount, cells: row}
	return true, nil
}

// HasLink reports whether a row exists for link. Does not touch the backend.
func (r *Repository) HasLink(link string) bool {
	_, ok := r.rowsByLink[link]
	return ok
}

// Header returns a copy of the current effective header.
func (r *Repository) Header() []string {
	return append([]string(nil), r.header...)
}

// prepareHeader derives the effective header from a stored one: base
// columns first, then every extra stored column in its stored order,
// skipping duplicates of base names.
func prepareHeader(stored []string) []string {
	header := append([]string(nil), domain.BaseHeader...)
	for _, column := range stored {
		if !containsColumn(header, column) {
			header = append(header, column)
		}
	}
	return header
}

// mapHeader rebuilds the key<->label mappings from the current header.
func (r *Repository) mapHeader() {
	for _, column := range r.header {
		key := domain.HeaderToKey(column)
		r.keyToLabel[key] = column
		r.labelToKey[column] = key
	}
}

// buildIndex maps every data row's link to its position, padding short
// rows to the effective header width. Rows without a link are ignored.
func (r *Repository) buildIndex(existing [][]string) {
	linkIdx := indexOfColumn(r.header, "Link")
	if linkIdx < 0 {
		return
	}
	for i, row := range existing[1:] {
		number := i + 2 // 1-based, after the header row
		link := ""
		if len(row) > linkIdx {
			link = row[linkIdx]
		}
		if link == "" {
			continue
		}
		padded := append([]string(nil), row...)
		for len(padded) < len(r.header) {
			padded = append(padded, "")
		}
		r.rowsByLink[link] = indexedRow{number: number, cells: padded}
	}
}

// composeRow fills every header column: base columns from the record's
// named fields, everything else from the dynamic mapping by its sanitised
// key, blank when absent. Absent values are written as empty strings; the
// backend does not distinguish "missing" from "explicitly empty", and the
// padding and update logic depends on that.
func (r *Repository) composeRow(record domain.JobRecord, dynamic map[string]string) []string {
	base := map[string]string{
		"Fetched At (UTC)": record.FetchedAt,
		"Role":             record.Role,
		"Job Title":        record.Title,
		"Source":           record.Source,
		"Link":             record.Link,
	}

	row := make([]string, 0, len(r.header))
	for _, column := range r.header {
		if value, ok := base[column]; ok {
			row = append(row, value)
			continue
		}
		key, ok := r.labelToKey[column]
		if !ok {
			key = domain.HeaderToKey(column)
		}
		row = append(row, dynamic[key])
	}
	return row
}

// writeHeader rewrites the header row in the backend.
func (r *Repository) writeHeader(ctx context.Context) error {
	if err := r.store.Update(ctx, 1, [][]string{append([]string(nil), r.header...)}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (r *Repository) labelExists(label string) bool {
	return containsColumn(r.header, label)
}

// mergeDynamicFields merges metadata then enrichment into one mapping with
// sanitised keys; enrichment wins on collision. Keys that sanitise to
// nothing are dropped.
func mergeDynamicFields(metadata, enrichment map[string]string) map[string]string {
	dynamic := make(map[string]string)
	for _, payload := range []map[string]string{metadata, enrichment} {
		for key, value := range payload {
			sanitised := domain.SanitizeKey(key)
			if sanitised == "" {
				continue
			}
			dynamic[sanitised] = value
		}
	}
	return dynamic
}

// mapKeys returns the keys of m sorted alphabetically. Across records,
// first-seen order still decides column positions because EnsureColumns
// skips known keys; sorting only pins the order of keys introduced by the
// same record, which Go maps would otherwise randomise.
func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsColumn(header []string, column string) bool {
	return indexOfColumn(header, column) >= 0
}

func indexOfColumn(header []string, column string) int {
	for i, c := range header {
		if c == column {
			return i
		}
	}
	return -1
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
