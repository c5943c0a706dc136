package model

import (
	"time"
)

type VoiceNote struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Filename    string    `db:"filename"` // original upload name
	StoragePath string    `db:"storage_path"`
	CreatedAt   time.Time `db:"created_at"`
}
