package driven

import "context"

// RowStore is the spreadsheet-like backend contract. Row numbers are
// 1-based; row 1 is the header when present. No richer query capability is
// assumed; the repository reads everything once at initialisation and
// addresses rows by position afterwards.
type RowStore interface {
	// GetAllRows returns every stored row in order. An empty backend
	// returns an empty slice, not an error.
	GetAllRows(ctx context.Context) ([][]string, error)

	// Update overwrites len(rows) consecutive rows starting at startRow.
	Update(ctx context.Context, startRow int, rows [][]string) error

	// AppendRow appends a row after the last stored row.
	AppendRow(ctx context.Context, row []string) error
}
