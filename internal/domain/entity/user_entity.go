package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password and never leave
// the auth layer.
type User struct {
	ID        string    `json:"userId"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
