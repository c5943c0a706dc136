package model

import (
	"time"
)

type User struct {
	ID               string    `db:"id"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	Email            string    `db:"email"` // stored lowercase
	Phone            string    `db:"phone"`
	Age              int       `db:"age"`
	PasswordHash     string    `db:"password_hash"`
	EmergencyContact string    `db:"emergency_contact"`
	EmergencyPhone   string    `db:"emergency_phone"`
	Newsletter       bool      `db:"newsletter"`
	CreatedAt        time.Time `db:"created_at"`
}

// FullName is used as the display name in session claims.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
