package entity

import (
	"time"
)

// User is the root identity entity. Every Profile and Post holds a
// non-owning reference to exactly one User.
//
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
