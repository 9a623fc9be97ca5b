package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_entries", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_kv_entries_updated'`).Scan(&name)
	require.NoError(t, err)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hub.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO kv_entries (key, value, updated_at) VALUES ('theme', 'dark', 'now')`)
	require.NoError(t, err)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("CAPSTONE_DB", "/tmp/elsewhere/hub.db")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere/hub.db", p)
}

func TestDefaultPath_UnderHome(t *testing.T) {
	t.Setenv("CAPSTONE_DB", "")
	t.Setenv("HOME", t.TempDir())
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".capstonehub", "hub.db"), p)
}
