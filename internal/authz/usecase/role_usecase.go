package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// roleUseCase implements RoleUseCase for organization-defined custom roles.
type roleUseCase struct {
	txManager       database.TxManager
	roleRepo        RoleRepository
	grantRepo       GrantRepository
	capabilityRepo  CapabilityRepository
	templateUseCase TemplateUseCase
}

// NewRoleUseCase creates a new RoleUseCase with the provided dependencies.
func NewRoleUseCase(
	txManager database.TxManager,
	roleRepo RoleRepository,
	grantRepo GrantRepository,
	capabilityRepo CapabilityRepository,
	templateUseCase TemplateUseCase,
) RoleUseCase {
	return &roleUseCase{
		txManager:       txManager,
		roleRepo:        roleRepo,
		grantRepo:       grantRepo,
		capabilityRepo:  capabilityRepo,
		templateUseCase: templateUseCase,
	}
}

// Create creates an organization-scoped custom role. When source templates
// are given their merged capability mapping seeds the role's grants; the role
// records which templates it was derived from.
func (r *roleUseCase) Create(ctx context.Context, input *CreateRoleInput) (*authzDomain.Role, error) {
	// Reject duplicate keys inside the organization up front.
	_, err := r.roleRepo.GetByKey(ctx, &input.OrganizationID, input.RoleKey)
	if err == nil {
		return nil, authzDomain.ErrRoleAlreadyExists
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var seedGrants map[string]authzDomain.AccessLevel
	if len(input.SourceTemplateKeys) > 0 {
		strategy := input.MergeStrategy
		if strategy == "" {
			strategy = authzDomain.MergeStrategyUnion
		}
		seedGrants, err = r.templateUseCase.Merge(input.SourceTemplateKeys, strategy)
		if err != nil {
			return nil, err
		}
	}

	organizationID := input.OrganizationID
	role := &authzDomain.Role{
		ID:                 uuid.Must(uuid.NewV7()),
		RoleKey:            input.RoleKey,
		Name:               input.Name,
		Description:        input.Description,
		OrganizationID:     &organizationID,
		SourceTemplateKeys: input.SourceTemplateKeys,
		IsSavedAsTemplate:  input.IsSavedAsTemplate,
		Customization:      input.Customization,
		CreatedAt:          time.Now().UTC(),
		UpdatedAt:          time.Now().UTC(),
	}

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.roleRepo.Create(ctx, role); err != nil {
			return err
		}

		for capabilityKey, level := range seedGrants {
			grant := &authzDomain.RoleCapabilityGrant{
				ID:            uuid.Must(uuid.NewV7()),
				RoleID:        role.ID,
				CapabilityKey: capabilityKey,
				AccessLevel:   level,
				CreatedAt:     time.Now().UTC(),
			}
			if err := r.grantRepo.Upsert(ctx, grant); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// Get retrieves a role by ID.
func (r *roleUseCase) Get(ctx context.Context, roleID uuid.UUID) (*authzDomain.Role, error) {
	return r.roleRepo.Get(ctx, roleID)
}

// List retrieves the system roles plus the organization's custom roles.
func (r *roleUseCase) List(ctx context.Context, organizationID uuid.UUID) ([]*authzDomain.Role, error) {
	return r.roleRepo.ListForOrganization(ctx, organizationID)
}

// Update modifies a custom role's descriptive attributes.
// System roles are immutable.
func (r *roleUseCase) Update(
	ctx context.Context,
	roleID uuid.UUID,
	input *UpdateRoleInput,
) (*authzDomain.Role, error) {
	role, err := r.roleRepo.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role.IsSystemRole {
		return nil, authzDomain.ErrSystemRoleImmutable
	}

	role.Name = input.Name
	role.Description = input.Description
	role.IsSavedAsTemplate = input.IsSavedAsTemplate
	role.Customization = input.Customization
	role.UpdatedAt = time.Now().UTC()

	if err := r.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a custom role. System roles cannot be deleted, and a role
// still held by members cannot be deleted.
func (r *roleUseCase) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := r.roleRepo.Get(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return authzDomain.ErrSystemRoleImmutable
	}

	count, err := r.roleRepo.MembershipCount(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return authzDomain.ErrRoleInUse
	}

	return r.roleRepo.Delete(ctx, roleID)
}

// SetGrant adds or updates one of the role's grants. The access level must be
// one of the capability's declared levels; system roles are immutable.
func (r *roleUseCase) SetGrant(ctx context.Context, roleID uuid.UUID, input *SetGrantInput) error {
	role, err := r.roleRepo.Get(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return authzDomain.ErrSystemRoleImmutable
	}

	capability, err := r.capabilityRepo.Get(ctx, input.CapabilityKey)
	if err != nil {
		return err
	}
	if !capability.SupportsLevel(input.AccessLevel) {
		return authzDomain.ErrUnsupportedAccessLevel
	}

	grant := &authzDomain.RoleCapabilityGrant{
		ID:            uuid.Must(uuid.NewV7()),
		RoleID:        roleID,
		CapabilityKey: input.CapabilityKey,
		AccessLevel:   input.AccessLevel,
		Constraints:   input.Constraints,
		CreatedAt:     time.Now().UTC(),
	}
	return r.grantRepo.Upsert(ctx, grant)
}

// RemoveGrant removes one of the role's grants. System roles are immutable.
func (r *roleUseCase) RemoveGrant(ctx context.Context, roleID uuid.UUID, capabilityKey string) error {
	role, err := r.roleRepo.Get(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return authzDomain.ErrSystemRoleImmutable
	}

	return r.grantRepo.Delete(ctx, roleID, capabilityKey)
}

// ListGrants retrieves the role's grants.
func (r *roleUseCase) ListGrants(
	ctx context.Context,
	roleID uuid.UUID,
) ([]*authzDomain.RoleCapabilityGrant, error) {
	if _, err := r.roleRepo.Get(ctx, roleID); err != nil {
		return nil, err
	}
	return r.grantRepo.ListByRole(ctx, roleID)
}
