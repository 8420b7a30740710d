package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can belong to multiple organizations through
// memberships. APITokenHash stores the SHA-256 hash of the user's bearer
// token; the plain token is only returned once at creation time.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	APITokenHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
