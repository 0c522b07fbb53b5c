package domain

import (
	"strings"
	"time"
)

// User owns accounts. Authentication concerns (hashing, tokens) live in the
// use case and infrastructure layers; the entity only holds state.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
