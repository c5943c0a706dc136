package repository

import (
	"database/sql"
	"errors"

	"github.com/guardline/guardline/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNoteNotFound = errors.New("voice note not found")
)

type VoiceNoteRepository interface {
	Create(note *model.VoiceNote) error
	ByIDAndUser(id, userID string) (*model.VoiceNote, error)
	ByUser(userID string) ([]*model.VoiceNote, error)
	Delete(id, userID string) error
}

type voiceNoteRepository struct {
	db *sqlx.DB
}

func NewVoiceNoteRepository(db *sqlx.DB) VoiceNoteRepository {
	return &voiceNoteRepository{db: db}
}

func (r *voiceNoteRepository) Create(note *model.VoiceNote) error {
	query := `INSERT INTO voice_notes (id, user_id, filename, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		note.ID,
		note.UserID,
		note.Filename,
		note.StoragePath,
		note.CreatedAt,
	)
	return err
}

func (r *voiceNoteRepository) ByIDAndUser(id, userID string) (*model.VoiceNote, error) {
	note := &model.VoiceNote{}
	query := `SELECT * FROM voice_notes WHERE id = $1 AND user_id = $2`

	err := r.db.Get(note, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}

	return note, err
}

func (r *voiceNoteRepository) ByUser(userID string) ([]*model.VoiceNote, error) {
	var notes []*model.VoiceNote
	query := `SELECT * FROM voice_notes WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *voiceNoteRepository) Delete(id, userID string) error {
	query := `DELETE FROM voice_notes WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
