package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "test.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm())
	}
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='locations'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "locations", name)
}

func TestNewDB_PreMigrationBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db1.conn.Exec(
		"INSERT INTO locations (session_id, path, view, created_at) VALUES (?, ?, ?, ?)",
		"s", "/map", "map", 1000,
	)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	_, err = os.Stat(dbPath + ".bak")
	require.ErrorIs(t, err, os.ErrNotExist, "first open has nothing to back up")

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestNewDB_Pragmas(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, busyTimeoutMs, busyTimeout)
}

func TestDB_CloseAndConnection(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	require.IsType(t, (*sql.DB)(nil), db.Connection())
	require.NoError(t, db.Connection().Ping())

	require.NoError(t, db.Close())
	require.Error(t, db.conn.Ping())
}

func TestNewDB_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db1.Close()

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "already-applied migrations are skipped")
	defer db2.Close()

	require.NoError(t, db1.conn.Ping())
	require.NoError(t, db2.conn.Ping())
}
