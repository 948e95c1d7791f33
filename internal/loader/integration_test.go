package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/logger"
	"github.com/dbsmedya/tdb/internal/profile"
)

// openEngine opens a real embedded database file in a temp directory.
// Skips the test when the engine bindings are unavailable on the platform.
func openEngine(t *testing.T) *database.Handle {
	t.Helper()
	h, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "loader.duckdb"))
	if err != nil {
		t.Skipf("embedded engine unavailable: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// A second staged build over the same database must behave exactly like the
// first: the previous run's constrained tables, foreign keys included, are
// replaced wholesale. This runs against the real engine because the drop
// ordering only matters when actual foreign key constraints exist.
func TestLoad_EngineRerunIsFullReplace(t *testing.T) {
	h := openEngine(t)

	dir := t.TempDir()
	writeCSV(t, dir, "users.csv", "id,name\n1,ada\n2,kay\n")
	writeCSV(t, dir, "orders.csv", "id,user_id\n10,1\n20,2\n")

	prof, err := profile.Parse([]byte(`{"tables": {
		"users": {"pk": ["id"], "fks": []},
		"orders": {"pk": ["id"], "fks": [{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}]}
	}}`))
	require.NoError(t, err)

	lp, err := NewLoadPhase(h.DB.DB, testOpts, logger.NewDefault())
	require.NoError(t, err)

	plan := []string{"users", "orders"}

	first, err := lp.Load(context.Background(), prof, plan, dir)
	require.NoError(t, err)
	second, err := lp.Load(context.Background(), prof, plan, dir)
	require.NoError(t, err, "re-run over the same database must replace the previous tables")

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].Table, second[i].Table)
		assert.Equal(t, first[i].Rows, second[i].Rows)
	}
	assert.Equal(t, int64(2), second[0].Rows)
	assert.Equal(t, int64(2), second[1].Rows)
}
