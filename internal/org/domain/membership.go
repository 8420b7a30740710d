package domain

import (
	"time"

	"github.com/google/uuid"
)

// Membership links a user to an organization with exactly one role.
// A user holds at most one membership per organization.
type Membership struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	RoleID         uuid.UUID
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
