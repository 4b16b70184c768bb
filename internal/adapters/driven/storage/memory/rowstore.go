// Package memory provides in-memory adapter implementations for testing.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure RowStore implements the interface.
var _ driven.RowStore = (*RowStore)(nil)

// RowStore is an in-memory implementation of driven.RowStore for testing.
// Rows are 1-based like the real backends.
type RowStore struct {
	mu   sync.RWMutex
	rows [][]string

	// UpdateCalls counts Update invocations, letting tests assert that
	// header rewrites only happen when something changed.
	UpdateCalls int
}

// NewRowStore creates an empty in-memory row store.
func NewRowStore() *RowStore {
	return &RowStore{}
}

// NewRowStoreWith creates a row store pre-seeded with rows.
func NewRowStoreWith(rows [][]string) *RowStore {
	s := &RowStore{}
	for _, row := range rows {
		s.rows = append(s.rows, append([]string(nil), row...))
	}
	return s
}

// GetAllRows returns every stored row in order.
func (s *RowStore) GetAllRows(_ context.Context) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Update overwrites consecutive rows starting at startRow, extending the
// store when the range reaches past the current last row.
func (s *RowStore) Update(_ context.Context, startRow int, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls++
	for i, row := range rows {
		idx := startRow - 1 + i
		for len(s.rows) <= idx {
			s.rows = append(s.rows, nil)
		}
		s.rows[idx] = append([]string(nil), row...)
	}
	return nil
}

// AppendRow appends a row after the last stored row.
func (s *RowStore) AppendRow(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

// RowCount returns the number of stored rows, header included.
func (s *RowStore) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Row returns a copy of the 1-based row n, or nil when out of range.
func (s *RowStore) Row(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 1 || n > len(s.rows) {
		return nil
	}
	return append([]string(nil), s.rows[n-1]...)
}
