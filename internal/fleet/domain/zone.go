// Package domain defines the core fleet entities: zones, vehicles, and
// drivers. Fleet resources are organization scoped and optionally assigned
// to a zone, which grant constraints can restrict access to.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Zone is a named operating area inside an organization. Grants can be
// constrained to a set of zones; resources without a zone are only visible
// to unconstrained grants.
type Zone struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
