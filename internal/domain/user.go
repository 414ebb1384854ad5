package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner is the public summary of a user embedded in expense responses.
type Owner struct {
	ID   uuid.UUID
	Name string
}

// Summary returns the owner summary of u.
func (u *User) Summary() Owner {
	return Owner{ID: u.ID, Name: u.Name}
}
