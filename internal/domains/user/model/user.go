package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an author account. This is a single-author blog in practice, but
// nothing here assumes exactly one row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
