package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RowStore {
	t.Helper()
	store, err := NewRowStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRowStore_EmptyBackend(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.GetAllRows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowStore_AppendAndReadBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, []string{"Fetched At (UTC)", "Role", "Job Title", "Source", "Link"}))
	require.NoError(t, store.AppendRow(ctx, []string{"2026-01-01T00:00:00Z", "Engineer", "X", "Indeed", "https://a/1"}))

	rows, err := store.GetAllRows(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Role", rows[0][1])
	assert.Equal(t, "https://a/1", rows[1][4])
}

func TestRowStore_UpdateOverwritesInPlace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, []string{"header"}))
	require.NoError(t, store.AppendRow(ctx, []string{"old", "values"}))

	require.NoError(t, store.Update(ctx, 2, [][]string{{"new", "values", "extra"}}))

	rows, err := store.GetAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"new", "values", "extra"}, rows[1])
}

func TestRowStore_UpdatePastEndExtends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, 1, [][]string{{"header"}, {"row two"}}))

	rows, err := store.GetAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"row two"}, rows[1])
}

func TestRowStore_UpdateRejectsZeroRow(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), 0, [][]string{{"x"}})

	require.Error(t, err)
}

func TestRowStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewRowStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.AppendRow(ctx, []string{"persisted"}))
	require.NoError(t, store.Close())

	reopened, err := NewRowStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.GetAllRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "persisted", rows[0][0])
}
