// Package sqlite provides a local RowStore backend. Rows are stored as
// JSON-encoded cell arrays keyed by 1-based row number, mirroring the
// worksheet model so the repository layer is backend-agnostic.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure RowStore implements the interface.
var _ driven.RowStore = (*RowStore)(nil)

// RowStore is a SQLite-backed row store.
type RowStore struct {
	db   *sql.DB
	path string
}

// NewRowStore creates a SQLite row store at the specified data directory.
// If dataDir is empty, defaults to ~/.jobradar/data/jobs.db.
func NewRowStore(dataDir string) (*RowStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".jobradar", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "jobs.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrBackendUnavailable, err)
	}

	s := &RowStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %v", domain.ErrBackendUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RowStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *RowStore) Path() string {
	return s.path
}

// GetAllRows returns every stored row in row-number order.
func (s *RowStore) GetAllRows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT cells FROM rows ORDER BY row_number")
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, fmt.Errorf("decoding row cells: %w", err)
		}
		result = append(result, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// Update overwrites len(rows) consecutive rows starting at startRow.
func (s *RowStore) Update(ctx context.Context, startRow int, rows [][]string) error {
	if startRow < 1 {
		return fmt.Errorf("%w: row numbers are 1-based, got %d", domain.ErrInvalidInput, startRow)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i, cells := range rows {
		encoded, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encoding row cells: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rows (row_number, cells) VALUES (?, ?)
			ON CONFLICT(row_number) DO UPDATE SET cells = excluded.cells
		`, startRow+i, string(encoded))
		if err != nil {
			return fmt.Errorf("writing row %d: %w", startRow+i, err)
		}
	}

	return tx.Commit()
}

// AppendRow appends a row after the last stored row.
func (s *RowStore) AppendRow(ctx context.Context, row []string) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encoding row cells: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rows (row_number, cells)
		SELECT COALESCE(MAX(row_number), 0) + 1, ? FROM rows
	`, string(encoded))
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}

func (s *RowStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
