package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/capstonehub/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory hub store with migrations applied. It is
// closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB opens a hub store in a temp directory, for tests that need
// a second connection to the same file.
func NewTestFileDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hub.db")
	return openTestDB(t, path), path
}

// NewTestUoW wraps database in the unit of work the option service uses.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test hub store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}
