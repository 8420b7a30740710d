package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// membershipUseCase implements MembershipUseCase.
type membershipUseCase struct {
	txManager      database.TxManager
	membershipRepo MembershipRepository
	userRepo       UserRepository
	roleRepo       authzUseCase.RoleRepository
}

// NewMembershipUseCase creates a new MembershipUseCase with the provided dependencies.
func NewMembershipUseCase(
	txManager database.TxManager,
	membershipRepo MembershipRepository,
	userRepo UserRepository,
	roleRepo authzUseCase.RoleRepository,
) MembershipUseCase {
	return &membershipUseCase{
		txManager:      txManager,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
	}
}

// AssignRole grants the user the role inside the organization. The role key
// resolves against the organization's custom roles first, then the system
// roles. An existing membership moves to the new role; otherwise a membership
// is created. A user holds exactly one role per organization.
func (m *membershipUseCase) AssignRole(
	ctx context.Context,
	input *AssignRoleInput,
) (*orgDomain.Membership, error) {
	if _, err := m.userRepo.Get(ctx, input.UserID); err != nil {
		return nil, err
	}

	role, err := m.roleRepo.GetByKey(ctx, &input.OrganizationID, input.RoleKey)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		role, err = m.roleRepo.GetByKey(ctx, nil, input.RoleKey)
	}
	if err != nil {
		return nil, err
	}

	var membership *orgDomain.Membership
	err = m.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := m.membershipRepo.Get(ctx, input.OrganizationID, input.UserID)
		switch {
		case err == nil:
			existing.RoleID = role.ID
			existing.IsActive = true
			existing.UpdatedAt = time.Now().UTC()
			membership = existing
			return m.membershipRepo.Update(ctx, existing)
		case apperrors.Is(err, apperrors.ErrNotFound):
			membership = &orgDomain.Membership{
				ID:             uuid.Must(uuid.NewV7()),
				OrganizationID: input.OrganizationID,
				UserID:         input.UserID,
				RoleID:         role.ID,
				IsActive:       true,
				CreatedAt:      time.Now().UTC(),
				UpdatedAt:      time.Now().UTC(),
			}
			return m.membershipRepo.Create(ctx, membership)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// Get retrieves the user's membership in the organization.
func (m *membershipUseCase) Get(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (*orgDomain.Membership, error) {
	return m.membershipRepo.Get(ctx, organizationID, userID)
}

// List retrieves the organization's memberships with pagination.
func (m *membershipUseCase) List(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
) ([]*orgDomain.Membership, error) {
	return m.membershipRepo.ListByOrganization(ctx, organizationID, offset, limit)
}

// Remove deletes the user's membership in the organization.
func (m *membershipUseCase) Remove(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) error {
	membership, err := m.membershipRepo.Get(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	return m.membershipRepo.Delete(ctx, membership.ID)
}
