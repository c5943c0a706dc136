package repository

import (
	"errors"
	"strings"

	"github.com/guardline/guardline/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrDuplicateContact = errors.New("phone number already in contacts")
)

// ContactRepository is owner-scoped: every read and write takes the owning
// user id so a caller can never see or touch another user's rows.
type ContactRepository interface {
	Create(contact *model.Contact) error
	ByUser(userID string) ([]*model.Contact, error)
	CountByUser(userID string) (int, error)
	Delete(id, userID string) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	query := `INSERT INTO emergency_contacts (id, user_id, name, phone, relation, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Phone,
		contact.Relation,
		contact.CreatedAt,
	)
	if err != nil {
		// The (user_id, phone) unique constraint is the duplicate authority;
		// concurrent inserts surface here the same as a pre-existing row.
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateContact
		}
		return err
	}

	return nil
}

func (r *contactRepository) ByUser(userID string) ([]*model.Contact, error) {
	var contacts []*model.Contact
	query := `SELECT * FROM emergency_contacts WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&contacts, query, userID)
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func (r *contactRepository) CountByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM emergency_contacts WHERE user_id = $1`

	err := r.db.Get(&count, query, userID)
	return count, err
}

func (r *contactRepository) Delete(id, userID string) error {
	query := `DELETE FROM emergency_contacts WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrContactNotFound
	}

	return nil
}
