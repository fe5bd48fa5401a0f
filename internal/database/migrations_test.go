package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	// The generations table exists and accepts rows
	_, err = db.Exec(`
		INSERT INTO generations (id, created_at, lat, lng, radius, points, backend, mode, response)
		VALUES ('x', '2026-08-28T12:00:00Z', 1.0, 2.0, 3000, 10000, 'pseudo', 'standard', '{}')
	`)
	assert.NoError(t, err)

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
}
