package usecase

import (
	"context"
	"fmt"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// checkUseCase implements CheckUseCase. The check is a pure, synchronous
// predicate: resolve the caller's role, read its grant, compare ranks.
type checkUseCase struct {
	membershipResolver MembershipResolver
	grantRepo          GrantRepository
}

// NewCheckUseCase creates a new CheckUseCase with the provided dependencies.
func NewCheckUseCase(membershipResolver MembershipResolver, grantRepo GrantRepository) CheckUseCase {
	return &checkUseCase{
		membershipResolver: membershipResolver,
		grantRepo:          grantRepo,
	}
}

// Check decides whether the caller may perform an operation guarded by the
// capability at the minimum level. An absent grant counts as level none.
// Constraint evaluation against the specific resource is the caller's
// responsibility; the returned result carries the grant's constraints.
func (c *checkUseCase) Check(
	ctx context.Context,
	caller authzDomain.Caller,
	capabilityKey string,
	minLevel authzDomain.AccessLevel,
) (*authzDomain.CheckResult, error) {
	if !minLevel.IsValid() {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown access level %q", minLevel),
		)
	}

	roleID, err := c.membershipResolver.ResolveRoleID(ctx, caller.OrganizationID, caller.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authzDomain.ErrNoActiveMembership
		}
		return nil, err
	}

	granted := authzDomain.AccessLevelNone
	var constraints *authzDomain.GrantConstraints

	grant, err := c.grantRepo.Get(ctx, roleID, capabilityKey)
	switch {
	case err == nil:
		granted = grant.AccessLevel
		constraints = grant.Constraints
	case apperrors.Is(err, apperrors.ErrNotFound):
		// No grant: implicit none.
	default:
		return nil, err
	}

	if !granted.AtLeast(minLevel) {
		return nil, authzDomain.ErrInsufficientAccessLevel
	}

	return &authzDomain.CheckResult{
		RoleID:        roleID,
		CapabilityKey: capabilityKey,
		AccessLevel:   granted,
		Constraints:   constraints,
	}, nil
}
