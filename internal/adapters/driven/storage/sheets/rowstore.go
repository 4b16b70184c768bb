// Package sheets provides a RowStore backed by a Google Sheets worksheet.
// Authentication uses a service-account JSON key; values are read and
// written unformatted (RAW) so cell content round-trips as plain strings.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure RowStore implements the interface.
var _ driven.RowStore = (*RowStore)(nil)

// Config holds configuration for the Sheets row store.
type Config struct {
	// SpreadsheetID identifies the target spreadsheet (required).
	SpreadsheetID string

	// Tab is the worksheet name within the spreadsheet (required).
	Tab string

	// CredentialsFile is the path to a service-account JSON key (required).
	CredentialsFile string
}

// RowStore reads and writes rows of one worksheet.
type RowStore struct {
	service       *sheetsapi.Service
	spreadsheetID string
	tab           string
}

// NewRowStore creates a Sheets row store over the configured worksheet.
func NewRowStore(ctx context.Context, cfg Config) (*RowStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: sheet.spreadsheet_id is not set", domain.ErrInvalidConfig)
	}
	if cfg.Tab == "" {
		return nil, fmt.Errorf("%w: sheet.tab is not set", domain.ErrInvalidConfig)
	}
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: sheet.credentials_file is not set", domain.ErrInvalidConfig)
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating sheets service: %v", domain.ErrBackendUnavailable, err)
	}

	return &RowStore{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		tab:           cfg.Tab,
	}, nil
}

// GetAllRows returns every row of the worksheet in order.
func (s *RowStore) GetAllRows(ctx context.Context) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.tab).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", s.tab, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rows = append(rows, cellsToStrings(row))
	}
	return rows, nil
}

// Update overwrites len(rows) consecutive rows starting at startRow.
func (s *RowStore) Update(ctx context.Context, startRow int, rows [][]string) error {
	if startRow < 1 {
		return fmt.Errorf("%w: row numbers are 1-based, got %d", domain.ErrInvalidInput, startRow)
	}

	values := &sheetsapi.ValueRange{Values: stringsToCells(rows)}
	rangeRef := fmt.Sprintf("%s!A%d", s.tab, startRow)

	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, rangeRef, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating rows at %s: %w", rangeRef, err)
	}
	return nil
}

// AppendRow appends a row after the last stored row.
func (s *RowStore) AppendRow(ctx context.Context, row []string) error {
	values := &sheetsapi.ValueRange{Values: stringsToCells([][]string{row})}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.tab, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to %q: %w", s.tab, err)
	}
	return nil
}

// cellsToStrings coerces a worksheet row to strings. Numeric cells keep
// their rendered form; nil cells are empty.
func cellsToStrings(row []interface{}) []string {
	cells := make([]string, len(row))
	for i, cell := range row {
		if cell == nil {
			continue
		}
		if s, ok := cell.(string); ok {
			cells[i] = s
			continue
		}
		cells[i] = fmt.Sprintf("%v", cell)
	}
	return cells
}

func stringsToCells(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		out[i] = cells
	}
	return out
}
