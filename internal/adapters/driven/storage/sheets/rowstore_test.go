package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

func TestNewRowStore_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing spreadsheet ID",
			cfg:  Config{Tab: "jobs", CredentialsFile: "sa.json"},
			want: "spreadsheet_id",
		},
		{
			name: "missing tab",
			cfg:  Config{SpreadsheetID: "abc", CredentialsFile: "sa.json"},
			want: "sheet.tab",
		},
		{
			name: "missing credentials file",
			cfg:  Config{SpreadsheetID: "abc", Tab: "jobs"},
			want: "credentials_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRowStore(context.Background(), tt.cfg)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCellsToStrings(t *testing.T) {
	cells := cellsToStrings([]interface{}{"text", 42, 3.5, nil, true})

	assert.Equal(t, []string{"text", "42", "3.5", "", "true"}, cells)
}

func TestStringsToCells(t *testing.T) {
	cells := stringsToCells([][]string{{"a", "b"}, {"c"}})

	require.Len(t, cells, 2)
	assert.Equal(t, []interface{}{"a", "b"}, cells[0])
	assert.Equal(t, []interface{}{"c"}, cells[1])
}
