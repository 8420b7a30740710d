// Package usecase defines business logic interfaces for authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
)

// CapabilityRepository defines persistence operations for the capability registry.
// Implementations must support transaction-aware operations via context propagation.
type CapabilityRepository interface {
	// SeedAll inserts capability definitions, skipping existing keys.
	// Returns the number of rows actually inserted.
	SeedAll(ctx context.Context, capabilities []authzDomain.Capability) (int, error)

	// Get retrieves a capability by key. Returns ErrCapabilityNotFound if absent.
	Get(ctx context.Context, key string) (*authzDomain.Capability, error)

	// ListByCategory retrieves all capabilities in the given category.
	ListByCategory(ctx context.Context, category authzDomain.FeatureCategory) ([]*authzDomain.Capability, error)

	// List retrieves every capability in the registry.
	List(ctx context.Context) ([]*authzDomain.Capability, error)
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	// Create stores a new role.
	Create(ctx context.Context, role *authzDomain.Role) error

	// CreateIfAbsent stores a system role unless one with the same key exists.
	// Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, role *authzDomain.Role) (bool, error)

	// Get retrieves a role by ID. Returns ErrRoleNotFound if absent.
	Get(ctx context.Context, roleID uuid.UUID) (*authzDomain.Role, error)

	// GetByKey retrieves a role by key; nil organizationID selects system roles.
	GetByKey(ctx context.Context, organizationID *uuid.UUID, roleKey string) (*authzDomain.Role, error)

	// ListForOrganization retrieves system roles plus the organization's custom roles.
	ListForOrganization(ctx context.Context, organizationID uuid.UUID) ([]*authzDomain.Role, error)

	// Update modifies an existing role.
	Update(ctx context.Context, role *authzDomain.Role) error

	// Delete removes a role by ID.
	Delete(ctx context.Context, roleID uuid.UUID) error

	// MembershipCount returns how many members currently hold the role.
	MembershipCount(ctx context.Context, roleID uuid.UUID) (int, error)
}

// GrantRepository defines persistence operations for role capability grants.
type GrantRepository interface {
	// Upsert inserts or replaces the grant for a (role, capability) pair.
	Upsert(ctx context.Context, grant *authzDomain.RoleCapabilityGrant) error

	// CreateIfAbsent inserts a grant unless the (role, capability) pair exists.
	// Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, grant *authzDomain.RoleCapabilityGrant) (bool, error)

	// Get retrieves the grant for a (role, capability) pair.
	// Returns ErrGrantNotFound if absent.
	Get(ctx context.Context, roleID uuid.UUID, capabilityKey string) (*authzDomain.RoleCapabilityGrant, error)

	// ListByRole retrieves all grants held by the role.
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]*authzDomain.RoleCapabilityGrant, error)

	// Delete removes the grant for a (role, capability) pair.
	Delete(ctx context.Context, roleID uuid.UUID, capabilityKey string) error
}

// MembershipResolver resolves the role a user holds inside an organization.
// Implemented by the org module's membership repository.
type MembershipResolver interface {
	// ResolveRoleID returns the ID of the caller's role in the organization.
	// Returns ErrNotFound when the user has no membership there.
	ResolveRoleID(ctx context.Context, organizationID, userID uuid.UUID) (uuid.UUID, error)
}

// RegistryUseCase manages the capability registry.
type RegistryUseCase interface {
	// RegisterAll seeds the fixed capability catalog into storage.
	// Idempotent: existing keys are left untouched and the returned count
	// covers only rows actually inserted.
	RegisterAll(ctx context.Context) (int, error)

	// Get retrieves a capability definition by key.
	Get(ctx context.Context, key string) (*authzDomain.Capability, error)

	// ListByCategory retrieves capabilities tagged with the category.
	ListByCategory(ctx context.Context, category authzDomain.FeatureCategory) ([]*authzDomain.Capability, error)

	// List retrieves the whole registry.
	List(ctx context.Context) ([]*authzDomain.Capability, error)
}

// TemplateComparison is the result of comparing templates: for every
// capability key granted by at least one template, the per-template level.
// A missing entry in Levels means the template does not grant the key.
type TemplateComparison struct {
	TemplateKeys []string
	// Levels maps capability key -> template key -> granted level.
	Levels map[string]map[string]authzDomain.AccessLevel
}

// TemplateUseCase exposes the predefined role template catalog and the
// merge/compare engine over it.
type TemplateUseCase interface {
	// List returns the eleven predefined templates.
	List() []authzDomain.RoleTemplate

	// Get returns the template for the role key.
	// Returns ErrTemplateNotFound for unknown keys.
	Get(roleKey string) (*authzDomain.RoleTemplate, error)

	// SeedPredefinedRoles materializes each template as a system role plus
	// grants. Idempotent; returns the number of roles actually created.
	SeedPredefinedRoles(ctx context.Context) (int, error)

	// Merge combines the templates' capability sets using the strategy.
	// Returns ErrInvalidInput for an empty key list or unknown keys.
	Merge(templateKeys []string, strategy authzDomain.MergeStrategy) (map[string]authzDomain.AccessLevel, error)

	// Compare returns a side-by-side view of at least two templates.
	// Returns ErrInvalidInput for fewer than two keys or unknown keys.
	Compare(templateKeys []string) (*TemplateComparison, error)
}

// CheckUseCase is the authorization gate consulted by every protected operation.
type CheckUseCase interface {
	// Check resolves the caller's role in the organization and tests its
	// grant for the capability against the minimum level. Returns
	// ErrForbidden (via ErrNoActiveMembership or ErrInsufficientAccessLevel)
	// on denial; an absent grant counts as level none. On success the result
	// carries the grant's constraints for the caller to evaluate against the
	// specific resource.
	Check(
		ctx context.Context,
		caller authzDomain.Caller,
		capabilityKey string,
		minLevel authzDomain.AccessLevel,
	) (*authzDomain.CheckResult, error)
}

// CreateRoleInput contains the parameters for creating a custom role.
type CreateRoleInput struct {
	OrganizationID uuid.UUID
	RoleKey        string
	Name           string
	Description    string
	// SourceTemplateKeys, when non-empty, seeds the role's grants from the
	// merged templates.
	SourceTemplateKeys []string
	// MergeStrategy selects how multiple source templates combine.
	// Defaults to union when unset and only one template is given.
	MergeStrategy     authzDomain.MergeStrategy
	IsSavedAsTemplate bool
	Customization     string
}

// UpdateRoleInput contains the parameters for updating a custom role.
type UpdateRoleInput struct {
	Name              string
	Description       string
	IsSavedAsTemplate bool
	Customization     string
}

// SetGrantInput contains the parameters for adding or changing a grant.
type SetGrantInput struct {
	CapabilityKey string
	AccessLevel   authzDomain.AccessLevel
	Constraints   *authzDomain.GrantConstraints
}

// RoleUseCase manages the custom role lifecycle.
type RoleUseCase interface {
	// Create creates an organization-scoped custom role, optionally seeding
	// its grants from merged templates.
	Create(ctx context.Context, input *CreateRoleInput) (*authzDomain.Role, error)

	// Get retrieves a role by ID.
	Get(ctx context.Context, roleID uuid.UUID) (*authzDomain.Role, error)

	// List retrieves the system roles plus the organization's custom roles.
	List(ctx context.Context, organizationID uuid.UUID) ([]*authzDomain.Role, error)

	// Update modifies a custom role. System roles are immutable.
	Update(ctx context.Context, roleID uuid.UUID, input *UpdateRoleInput) (*authzDomain.Role, error)

	// Delete removes a custom role that no member holds.
	Delete(ctx context.Context, roleID uuid.UUID) error

	// SetGrant adds or updates one of the role's grants, validating the
	// access level against the capability's declared levels.
	SetGrant(ctx context.Context, roleID uuid.UUID, input *SetGrantInput) error

	// RemoveGrant removes one of the role's grants.
	RemoveGrant(ctx context.Context, roleID uuid.UUID, capabilityKey string) error

	// ListGrants retrieves the role's grants.
	ListGrants(ctx context.Context, roleID uuid.UUID) ([]*authzDomain.RoleCapabilityGrant, error)
}
