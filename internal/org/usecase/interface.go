// Package usecase implements the business logic for organizations, users,
// and memberships.
package usecase

import (
	"context"

	"github.com/google/uuid"

	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	// Create stores a new organization.
	Create(ctx context.Context, organization *orgDomain.Organization) error

	// Get retrieves an organization by ID. Returns ErrOrganizationNotFound if absent.
	Get(ctx context.Context, organizationID uuid.UUID) (*orgDomain.Organization, error)

	// GetBySlug retrieves an organization by slug. Returns ErrOrganizationNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (*orgDomain.Organization, error)

	// List retrieves organizations with pagination.
	List(ctx context.Context, offset, limit int) ([]*orgDomain.Organization, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *orgDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if absent.
	Get(ctx context.Context, userID uuid.UUID) (*orgDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*orgDomain.User, error)

	// GetByTokenHash retrieves a user by API token hash. Returns ErrUserNotFound if absent.
	GetByTokenHash(ctx context.Context, tokenHash string) (*orgDomain.User, error)

	// Update modifies an existing user.
	Update(ctx context.Context, user *orgDomain.User) error
}

// MembershipRepository defines persistence operations for memberships.
type MembershipRepository interface {
	// Create stores a new membership.
	Create(ctx context.Context, membership *orgDomain.Membership) error

	// Get retrieves the user's membership in the organization.
	// Returns ErrMembershipNotFound if absent.
	Get(ctx context.Context, organizationID, userID uuid.UUID) (*orgDomain.Membership, error)

	// ListByOrganization retrieves the organization's memberships with pagination.
	ListByOrganization(
		ctx context.Context,
		organizationID uuid.UUID,
		offset, limit int,
	) ([]*orgDomain.Membership, error)

	// Update modifies an existing membership.
	Update(ctx context.Context, membership *orgDomain.Membership) error

	// Delete removes a membership by ID.
	Delete(ctx context.Context, membershipID uuid.UUID) error

	// ResolveRoleID returns the role held by the user's active membership.
	ResolveRoleID(ctx context.Context, organizationID, userID uuid.UUID) (uuid.UUID, error)
}

// CreateOrganizationInput contains the parameters for creating an organization.
type CreateOrganizationInput struct {
	Slug string
	Name string
}

// OrganizationUseCase manages the organization lifecycle.
type OrganizationUseCase interface {
	// Create creates a new organization with a unique slug.
	Create(ctx context.Context, input *CreateOrganizationInput) (*orgDomain.Organization, error)

	// Get retrieves an organization by ID.
	Get(ctx context.Context, organizationID uuid.UUID) (*orgDomain.Organization, error)

	// GetBySlug retrieves an organization by slug.
	GetBySlug(ctx context.Context, slug string) (*orgDomain.Organization, error)

	// List retrieves organizations with pagination.
	List(ctx context.Context, offset, limit int) ([]*orgDomain.Organization, error)
}

// RegisterUserInput contains the parameters for registering a user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserUseCase manages the user lifecycle and token authentication.
type UserUseCase interface {
	// Register creates a new user and issues an API token.
	// The plain token is returned once and never stored.
	Register(ctx context.Context, input *RegisterUserInput) (*orgDomain.User, string, error)

	// Authenticate resolves a plain bearer token to an active user.
	// Returns ErrInvalidToken for unknown tokens and ErrInactiveUser for
	// deactivated accounts.
	Authenticate(ctx context.Context, plainToken string) (*orgDomain.User, error)

	// RotateToken issues a new API token for the user, invalidating the old one.
	RotateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// Deactivate marks a user inactive, blocking authentication.
	Deactivate(ctx context.Context, userID uuid.UUID) error

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*orgDomain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*orgDomain.User, error)
}

// AssignRoleInput contains the parameters for assigning a role to a user
// inside an organization.
type AssignRoleInput struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	RoleKey        string
}

// MembershipUseCase manages user memberships and role assignment.
type MembershipUseCase interface {
	// AssignRole grants the user the role inside the organization, creating
	// the membership if needed or moving an existing one to the new role.
	// The role key resolves against the organization's custom roles first,
	// then the system roles.
	AssignRole(ctx context.Context, input *AssignRoleInput) (*orgDomain.Membership, error)

	// Get retrieves the user's membership in the organization.
	Get(ctx context.Context, organizationID, userID uuid.UUID) (*orgDomain.Membership, error)

	// List retrieves the organization's memberships with pagination.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		offset, limit int,
	) ([]*orgDomain.Membership, error)

	// Remove deletes the user's membership in the organization.
	Remove(ctx context.Context, organizationID, userID uuid.UUID) error
}
