package service

import (
	"path/filepath"
	"testing"

	"github.com/guardline/guardline/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path)
	require.NoError(t, err)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() {
		database.Close()
	})

	return database
}
