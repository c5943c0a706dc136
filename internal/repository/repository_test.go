package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guardline/guardline/internal/db"
	"github.com/guardline/guardline/internal/model"
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

func createTestUser(t *testing.T, users UserRepository, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(user))

	return user
}
