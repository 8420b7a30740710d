package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named bundle of capability grants assignable to organization
// members. System roles are seeded from the template catalog and are global;
// custom roles are created by organization admins and owned by their
// organization.
type Role struct {
	ID             uuid.UUID
	RoleKey        string
	Name           string
	Description    string
	IsSystemRole   bool
	OrganizationID *uuid.UUID
	// SourceTemplateKeys records which templates a custom role was derived
	// from, in the order given at creation time. Empty for system roles.
	SourceTemplateKeys []string
	// IsSavedAsTemplate marks a custom role as reusable inside its organization.
	IsSavedAsTemplate bool
	// Customization is a free-form note documenting deviations from the
	// source templates.
	Customization string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GrantConstraints restricts a grant to a subset of the organization's
// resources. Evaluation happens in the collaborator that owns the resource,
// not in the capability check itself.
type GrantConstraints struct {
	// ZoneIDs restricts access to resources assigned to the listed zones.
	// Empty means unrestricted.
	ZoneIDs []uuid.UUID `json:"zone_ids,omitempty"`
}

// IsZero reports whether the constraints impose no restriction.
func (c *GrantConstraints) IsZero() bool {
	return c == nil || len(c.ZoneIDs) == 0
}

// AllowsZone reports whether a resource assigned to the given zone passes
// the constraint. Resources without a zone pass only unrestricted grants.
func (c *GrantConstraints) AllowsZone(zoneID *uuid.UUID) bool {
	if c.IsZero() {
		return true
	}
	if zoneID == nil {
		return false
	}
	for _, allowed := range c.ZoneIDs {
		if allowed == *zoneID {
			return true
		}
	}
	return false
}

// RoleCapabilityGrant links a role to a capability with an access level and
// optional constraints. Unique per (role, capability key); the level must be
// one of the capability's declared levels.
type RoleCapabilityGrant struct {
	ID            uuid.UUID
	RoleID        uuid.UUID
	CapabilityKey string
	AccessLevel   AccessLevel
	Constraints   *GrantConstraints
	CreatedAt     time.Time
}

// Caller identifies an authenticated user acting inside an organization.
type Caller struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
}

// CheckResult is the outcome of an allowed capability check. Constraints, when
// present, must be evaluated by the caller against the specific resource.
type CheckResult struct {
	RoleID        uuid.UUID
	CapabilityKey string
	AccessLevel   AccessLevel
	Constraints   *GrantConstraints
}
