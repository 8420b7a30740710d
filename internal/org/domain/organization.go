// Package domain defines the core entities for organizations, users, and
// memberships. Every fleet resource and every authorization decision is
// scoped to one organization.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant. All roles, memberships, and fleet resources
// belong to exactly one organization.
type Organization struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
