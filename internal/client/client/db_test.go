package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestInitDatabase_CreatesMetadataTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vrdoctor.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO metadata(key,value) VALUES('session.token','tok')`)
	require.NoError(t, err)

	var v []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key='session.token'`).Scan(&v))
	require.Equal(t, []byte("tok"), v)
}

func TestInitDatabase_ReopenIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vrdoctor.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// migrations must not fail on an already-migrated database
	db, err = InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
