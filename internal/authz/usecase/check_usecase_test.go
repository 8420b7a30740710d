package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// mockMembershipResolver is a mock implementation of MembershipResolver.
type mockMembershipResolver struct {
	mock.Mock
}

func (m *mockMembershipResolver) ResolveRoleID(
	ctx context.Context,
	organizationID, userID uuid.UUID,
) (uuid.UUID, error) {
	args := m.Called(ctx, organizationID, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func testCaller() authzDomain.Caller {
	return authzDomain.Caller{
		UserID:         uuid.Must(uuid.NewV7()),
		OrganizationID: uuid.Must(uuid.NewV7()),
	}
}

func TestCheckUseCase_Check_Allowed(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Success_ExactLevel", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "vehicle.manage").Return(&authzDomain.RoleCapabilityGrant{
			RoleID:        roleID,
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelView,
		}, nil)

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		require.NoError(t, err)
		assert.Equal(t, roleID, result.RoleID)
		assert.Equal(t, "vehicle.manage", result.CapabilityKey)
		assert.Equal(t, authzDomain.AccessLevelView, result.AccessLevel)
		assert.Nil(t, result.Constraints)

		resolver.AssertExpectations(t)
		grantRepo.AssertExpectations(t)
	})

	t.Run("Success_HigherLevelSatisfiesMinimum", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "trip.manage").Return(&authzDomain.RoleCapabilityGrant{
			RoleID:        roleID,
			CapabilityKey: "trip.manage",
			AccessLevel:   authzDomain.AccessLevelFull,
		}, nil)

		result, err := useCase.Check(ctx, caller, "trip.manage", authzDomain.AccessLevelLimited)
		require.NoError(t, err)
		// The result reports the granted level, not the minimum asked for.
		assert.Equal(t, authzDomain.AccessLevelFull, result.AccessLevel)
	})

	t.Run("Success_ConstraintsPassedThrough", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		zoneID := uuid.Must(uuid.NewV7())
		constraints := &authzDomain.GrantConstraints{ZoneIDs: []uuid.UUID{zoneID}}

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "vehicle.manage").Return(&authzDomain.RoleCapabilityGrant{
			RoleID:        roleID,
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelLimited,
			Constraints:   constraints,
		}, nil)

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelLimited)
		require.NoError(t, err)
		require.NotNil(t, result.Constraints)
		assert.Equal(t, constraints.ZoneIDs, result.Constraints.ZoneIDs)
	})
}

func TestCheckUseCase_Check_Denied(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Error_NoMembership", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).
			Return(uuid.Nil, apperrors.Wrap(apperrors.ErrNotFound, "membership not found"))

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, authzDomain.ErrNoActiveMembership)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("Error_InsufficientLevel", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "vehicle.manage").Return(&authzDomain.RoleCapabilityGrant{
			RoleID:        roleID,
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelView,
		}, nil)

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelFull)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, authzDomain.ErrInsufficientAccessLevel)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("Error_MissingGrantCountsAsNone", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "budget.manage").Return(nil, authzDomain.ErrGrantNotFound)

		result, err := useCase.Check(ctx, caller, "budget.manage", authzDomain.AccessLevelView)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, authzDomain.ErrInsufficientAccessLevel)
	})

	t.Run("Success_MissingGrantSatisfiesMinimumNone", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "budget.manage").Return(nil, authzDomain.ErrGrantNotFound)

		result, err := useCase.Check(ctx, caller, "budget.manage", authzDomain.AccessLevelNone)
		require.NoError(t, err)
		assert.Equal(t, authzDomain.AccessLevelNone, result.AccessLevel)
	})
}

func TestCheckUseCase_Check_Errors(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Error_InvalidMinimumLevel", func(t *testing.T) {
		useCase := NewCheckUseCase(&mockMembershipResolver{}, &mockGrantRepository{})

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevel("owner"))
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_ResolverFailure", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).
			Return(uuid.Nil, assert.AnError)

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Error_GrantRepositoryFailure", func(t *testing.T) {
		resolver := &mockMembershipResolver{}
		grantRepo := &mockGrantRepository{}
		useCase := NewCheckUseCase(resolver, grantRepo)

		resolver.On("ResolveRoleID", ctx, caller.OrganizationID, caller.UserID).Return(roleID, nil)
		grantRepo.On("Get", ctx, roleID, "vehicle.manage").Return(nil, assert.AnError)

		result, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
