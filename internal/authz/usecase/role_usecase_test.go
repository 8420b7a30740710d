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

// mockCapabilityRepository is a mock implementation of CapabilityRepository.
type mockCapabilityRepository struct {
	mock.Mock
}

func (m *mockCapabilityRepository) SeedAll(
	ctx context.Context,
	capabilities []authzDomain.Capability,
) (int, error) {
	args := m.Called(ctx, capabilities)
	return args.Int(0), args.Error(1)
}

func (m *mockCapabilityRepository) Get(ctx context.Context, key string) (*authzDomain.Capability, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Capability), args.Error(1)
}

func (m *mockCapabilityRepository) ListByCategory(
	ctx context.Context,
	category authzDomain.FeatureCategory,
) ([]*authzDomain.Capability, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authzDomain.Capability), args.Error(1)
}

func (m *mockCapabilityRepository) List(ctx context.Context) ([]*authzDomain.Capability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authzDomain.Capability), args.Error(1)
}

type roleUseCaseMocks struct {
	txManager      *mockTxManager
	roleRepo       *mockRoleRepository
	grantRepo      *mockGrantRepository
	capabilityRepo *mockCapabilityRepository
}

func newRoleUseCaseForTest() (RoleUseCase, *roleUseCaseMocks) {
	mocks := &roleUseCaseMocks{
		txManager:      &mockTxManager{},
		roleRepo:       &mockRoleRepository{},
		grantRepo:      &mockGrantRepository{},
		capabilityRepo: &mockCapabilityRepository{},
	}
	templateUseCase := newTemplateUseCaseForTest(mocks.txManager, mocks.roleRepo, mocks.grantRepo)
	useCase := NewRoleUseCase(
		mocks.txManager,
		mocks.roleRepo,
		mocks.grantRepo,
		mocks.capabilityRepo,
		templateUseCase,
	)
	return useCase, mocks
}

func TestRoleUseCase_Create(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())

	t.Run("Success_PlainRole", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("GetByKey", ctx, &organizationID, "night_shift").
			Return(nil, authzDomain.ErrRoleNotFound)
		mocks.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mocks.roleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Role")).Return(nil)

		role, err := useCase.Create(ctx, &CreateRoleInput{
			OrganizationID: organizationID,
			RoleKey:        "night_shift",
			Name:           "Night Shift",
			Description:    "Night operations crew",
		})
		require.NoError(t, err)
		assert.Equal(t, "night_shift", role.RoleKey)
		assert.False(t, role.IsSystemRole)
		require.NotNil(t, role.OrganizationID)
		assert.Equal(t, organizationID, *role.OrganizationID)
		assert.Empty(t, role.SourceTemplateKeys)

		mocks.roleRepo.AssertExpectations(t)
		// No templates given, so no grants are seeded.
		mocks.grantRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Success_FromMergedTemplates", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		sourceKeys := []string{authzDomain.TemplateZoneSupervisor, authzDomain.TemplateTrackingOperator}

		mocks.roleRepo.On("GetByKey", ctx, &organizationID, "zone_ops").
			Return(nil, authzDomain.ErrRoleNotFound)
		mocks.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mocks.roleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Role")).Return(nil)

		seeded := make(map[string]authzDomain.AccessLevel)
		mocks.grantRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.RoleCapabilityGrant")).
			Run(func(args mock.Arguments) {
				grant := args.Get(1).(*authzDomain.RoleCapabilityGrant)
				seeded[grant.CapabilityKey] = grant.AccessLevel
			}).
			Return(nil)

		role, err := useCase.Create(ctx, &CreateRoleInput{
			OrganizationID:     organizationID,
			RoleKey:            "zone_ops",
			Name:               "Zone Operations",
			SourceTemplateKeys: sourceKeys,
			MergeStrategy:      authzDomain.MergeStrategyUnion,
			IsSavedAsTemplate:  true,
			Customization:      "zone supervisor with full tracking",
		})
		require.NoError(t, err)
		assert.Equal(t, sourceKeys, role.SourceTemplateKeys)
		assert.True(t, role.IsSavedAsTemplate)

		// Union semantics: tracking.history only comes from the tracking
		// operator, zone.manage only from the supervisor, and the shared
		// tracking.view resolves to the highest level.
		assert.Equal(t, authzDomain.AccessLevelFull, seeded["tracking.history"])
		assert.Equal(t, authzDomain.AccessLevelFull, seeded["zone.manage"])
		assert.Equal(t, authzDomain.AccessLevelFull, seeded["tracking.view"])
		assert.Equal(t, authzDomain.AccessLevelLimited, seeded["vehicle.manage"])
	})

	t.Run("Success_DefaultStrategyIsUnion", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("GetByKey", ctx, &organizationID, "basic_driver").
			Return(nil, authzDomain.ErrRoleNotFound)
		mocks.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		mocks.roleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Role")).Return(nil)
		mocks.grantRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.RoleCapabilityGrant")).Return(nil)

		role, err := useCase.Create(ctx, &CreateRoleInput{
			OrganizationID:     organizationID,
			RoleKey:            "basic_driver",
			Name:               "Basic Driver",
			SourceTemplateKeys: []string{authzDomain.TemplateDriver},
		})
		require.NoError(t, err)
		assert.NotNil(t, role)

		// The driver template grants exactly three capabilities.
		mocks.grantRepo.AssertNumberOfCalls(t, "Upsert", 3)
	})

	t.Run("Error_DuplicateKey", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		existing := &authzDomain.Role{ID: uuid.Must(uuid.NewV7()), RoleKey: "night_shift"}
		mocks.roleRepo.On("GetByKey", ctx, &organizationID, "night_shift").Return(existing, nil)

		role, err := useCase.Create(ctx, &CreateRoleInput{
			OrganizationID: organizationID,
			RoleKey:        "night_shift",
			Name:           "Night Shift",
		})
		assert.Nil(t, role)
		assert.ErrorIs(t, err, authzDomain.ErrRoleAlreadyExists)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("Error_UnknownTemplateKey", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("GetByKey", ctx, &organizationID, "bad_role").
			Return(nil, authzDomain.ErrRoleNotFound)

		role, err := useCase.Create(ctx, &CreateRoleInput{
			OrganizationID:     organizationID,
			RoleKey:            "bad_role",
			Name:               "Bad Role",
			SourceTemplateKeys: []string{"warehouse_manager"},
		})
		assert.Nil(t, role)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		mocks.roleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRoleUseCase_Update(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Success_CustomRole", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		organizationID := uuid.Must(uuid.NewV7())
		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:             roleID,
			RoleKey:        "night_shift",
			Name:           "Night Shift",
			OrganizationID: &organizationID,
		}, nil)
		mocks.roleRepo.On("Update", ctx, mock.AnythingOfType("*domain.Role")).Return(nil)

		role, err := useCase.Update(ctx, roleID, &UpdateRoleInput{
			Name:          "Night Shift Crew",
			Description:   "Updated description",
			Customization: "renamed",
		})
		require.NoError(t, err)
		assert.Equal(t, "Night Shift Crew", role.Name)
		assert.Equal(t, "Updated description", role.Description)
		assert.Equal(t, "renamed", role.Customization)
	})

	t.Run("Error_SystemRoleImmutable", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:           roleID,
			RoleKey:      authzDomain.TemplateOrgAdmin,
			IsSystemRole: true,
		}, nil)

		role, err := useCase.Update(ctx, roleID, &UpdateRoleInput{Name: "Renamed Admin"})
		assert.Nil(t, role)
		assert.ErrorIs(t, err, authzDomain.ErrSystemRoleImmutable)
		mocks.roleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_RoleNotFound", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(nil, authzDomain.ErrRoleNotFound)

		role, err := useCase.Update(ctx, roleID, &UpdateRoleInput{Name: "X"})
		assert.Nil(t, role)
		assert.ErrorIs(t, err, authzDomain.ErrRoleNotFound)
	})
}

func TestRoleUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())
	organizationID := uuid.Must(uuid.NewV7())

	customRole := func() *authzDomain.Role {
		return &authzDomain.Role{
			ID:             roleID,
			RoleKey:        "night_shift",
			OrganizationID: &organizationID,
		}
	}

	t.Run("Success_UnusedCustomRole", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(customRole(), nil)
		mocks.roleRepo.On("MembershipCount", ctx, roleID).Return(0, nil)
		mocks.roleRepo.On("Delete", ctx, roleID).Return(nil)

		err := useCase.Delete(ctx, roleID)
		assert.NoError(t, err)
		mocks.roleRepo.AssertExpectations(t)
	})

	t.Run("Error_RoleInUse", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(customRole(), nil)
		mocks.roleRepo.On("MembershipCount", ctx, roleID).Return(3, nil)

		err := useCase.Delete(ctx, roleID)
		assert.ErrorIs(t, err, authzDomain.ErrRoleInUse)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		mocks.roleRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Error_SystemRole", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:           roleID,
			IsSystemRole: true,
		}, nil)

		err := useCase.Delete(ctx, roleID)
		assert.ErrorIs(t, err, authzDomain.ErrSystemRoleImmutable)
		mocks.roleRepo.AssertNotCalled(t, "MembershipCount", mock.Anything, mock.Anything)
	})
}

func TestRoleUseCase_SetGrant(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())
	organizationID := uuid.Must(uuid.NewV7())

	customRole := func() *authzDomain.Role {
		return &authzDomain.Role{
			ID:             roleID,
			RoleKey:        "night_shift",
			OrganizationID: &organizationID,
		}
	}

	t.Run("Success_SupportedLevel", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(customRole(), nil)
		mocks.capabilityRepo.On("Get", ctx, "vehicle.manage").Return(&authzDomain.Capability{
			Key: "vehicle.manage",
			AccessLevels: []authzDomain.AccessLevel{
				authzDomain.AccessLevelNone,
				authzDomain.AccessLevelView,
				authzDomain.AccessLevelLimited,
				authzDomain.AccessLevelFull,
			},
		}, nil)

		zoneID := uuid.Must(uuid.NewV7())
		var captured *authzDomain.RoleCapabilityGrant
		mocks.grantRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.RoleCapabilityGrant")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*authzDomain.RoleCapabilityGrant)
			}).
			Return(nil)

		err := useCase.SetGrant(ctx, roleID, &SetGrantInput{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelLimited,
			Constraints:   &authzDomain.GrantConstraints{ZoneIDs: []uuid.UUID{zoneID}},
		})
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, roleID, captured.RoleID)
		assert.Equal(t, authzDomain.AccessLevelLimited, captured.AccessLevel)
		require.NotNil(t, captured.Constraints)
		assert.Equal(t, []uuid.UUID{zoneID}, captured.Constraints.ZoneIDs)
	})

	t.Run("Error_UnsupportedLevel", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(customRole(), nil)
		// report.export only supports none and full, no limited.
		mocks.capabilityRepo.On("Get", ctx, "report.export").Return(&authzDomain.Capability{
			Key: "report.export",
			AccessLevels: []authzDomain.AccessLevel{
				authzDomain.AccessLevelNone,
				authzDomain.AccessLevelFull,
			},
		}, nil)

		err := useCase.SetGrant(ctx, roleID, &SetGrantInput{
			CapabilityKey: "report.export",
			AccessLevel:   authzDomain.AccessLevelLimited,
		})
		assert.ErrorIs(t, err, authzDomain.ErrUnsupportedAccessLevel)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		mocks.grantRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Error_SystemRoleImmutable", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:           roleID,
			IsSystemRole: true,
		}, nil)

		err := useCase.SetGrant(ctx, roleID, &SetGrantInput{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelView,
		})
		assert.ErrorIs(t, err, authzDomain.ErrSystemRoleImmutable)
		mocks.capabilityRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(customRole(), nil)
		mocks.capabilityRepo.On("Get", ctx, "warehouse.manage").
			Return(nil, authzDomain.ErrCapabilityNotFound)

		err := useCase.SetGrant(ctx, roleID, &SetGrantInput{
			CapabilityKey: "warehouse.manage",
			AccessLevel:   authzDomain.AccessLevelView,
		})
		assert.ErrorIs(t, err, authzDomain.ErrCapabilityNotFound)
	})
}

func TestRoleUseCase_RemoveGrant(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())
	organizationID := uuid.Must(uuid.NewV7())

	t.Run("Success_CustomRole", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:             roleID,
			OrganizationID: &organizationID,
		}, nil)
		mocks.grantRepo.On("Delete", ctx, roleID, "vehicle.manage").Return(nil)

		err := useCase.RemoveGrant(ctx, roleID, "vehicle.manage")
		assert.NoError(t, err)
		mocks.grantRepo.AssertExpectations(t)
	})

	t.Run("Error_SystemRoleImmutable", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{
			ID:           roleID,
			IsSystemRole: true,
		}, nil)

		err := useCase.RemoveGrant(ctx, roleID, "vehicle.manage")
		assert.ErrorIs(t, err, authzDomain.ErrSystemRoleImmutable)
		mocks.grantRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRoleUseCase_ListGrants(t *testing.T) {
	ctx := context.Background()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		grants := []*authzDomain.RoleCapabilityGrant{
			{RoleID: roleID, CapabilityKey: "vehicle.manage", AccessLevel: authzDomain.AccessLevelFull},
		}
		mocks.roleRepo.On("Get", ctx, roleID).Return(&authzDomain.Role{ID: roleID}, nil)
		mocks.grantRepo.On("ListByRole", ctx, roleID).Return(grants, nil)

		result, err := useCase.ListGrants(ctx, roleID)
		require.NoError(t, err)
		assert.Equal(t, grants, result)
	})

	t.Run("Error_RoleNotFound", func(t *testing.T) {
		useCase, mocks := newRoleUseCaseForTest()

		mocks.roleRepo.On("Get", ctx, roleID).Return(nil, authzDomain.ErrRoleNotFound)

		result, err := useCase.ListGrants(ctx, roleID)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, authzDomain.ErrRoleNotFound)
		mocks.grantRepo.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything)
	})
}
