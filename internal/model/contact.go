package model

import (
	"time"
)

// Contact is an emergency contact belonging to exactly one user.
// Phone is stored digits-only so the (user_id, phone) unique
// constraint catches differently formatted duplicates.
type Contact struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Relation  string    `db:"relation"`
	CreatedAt time.Time `db:"created_at"`
}
