package model

import (
	"time"
)

const SosStatusActive = "active"

// SosAlert is append-only; there is no update or delete path.
type SosAlert struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Location  string    `db:"location"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}
