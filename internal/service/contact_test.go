package service

import (
	"testing"
	"time"

	"github.com/guardline/guardline/internal/model"
	"github.com/guardline/guardline/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactFixture(t *testing.T) (*ContactService, *model.User) {
	t.Helper()

	database := newTestDB(t)
	users := repository.NewUserRepository(database)
	contacts := repository.NewContactRepository(database)

	auth := NewAuthService(users, testJWTSecret, false, time.Hour)
	user, err := auth.Register(validRegisterInput("owner@example.com"))
	require.NoError(t, err)

	return NewContactService(contacts), user
}

func TestContactCreate_NormalizesPhone(t *testing.T) {
	contacts, user := newContactFixture(t)

	contact, err := contacts.Create(user.ID, "Mom", "(555) 123-4567", "mother")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", contact.Phone)
}

func TestContactCreate_Validation(t *testing.T) {
	contacts, user := newContactFixture(t)

	_, err := contacts.Create(user.ID, "", "5551234567", "")
	assert.ErrorIs(t, err, ErrContactFieldsMissing)

	_, err = contacts.Create(user.ID, "Mom", "", "")
	assert.ErrorIs(t, err, ErrContactFieldsMissing)

	_, err = contacts.Create(user.ID, "Mom", "12345", "")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestContactCreate_DuplicateAfterNormalization(t *testing.T) {
	contacts, user := newContactFixture(t)

	_, err := contacts.Create(user.ID, "Mom", "123-456-7890", "mother")
	require.NoError(t, err)

	// Same number, different formatting
	_, err = contacts.Create(user.ID, "Mother", "1234567890", "mother")
	assert.ErrorIs(t, err, repository.ErrDuplicateContact)
}

func TestContactDelete_RequiresOwnership(t *testing.T) {
	contacts, user := newContactFixture(t)

	contact, err := contacts.Create(user.ID, "Mom", "5551234567", "mother")
	require.NoError(t, err)

	err = contacts.Delete(contact.ID, "someone-else")
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	require.NoError(t, contacts.Delete(contact.ID, user.ID))
}
