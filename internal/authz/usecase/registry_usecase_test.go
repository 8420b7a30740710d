package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
)

func TestRegistryUseCase_RegisterAll(t *testing.T) {
	ctx := context.Background()
	catalogSize := len(authzDomain.CapabilityDefinitions())

	t.Run("Success_FirstRunInsertsCatalog", func(t *testing.T) {
		capabilityRepo := &mockCapabilityRepository{}
		useCase := NewRegistryUseCase(capabilityRepo, testLogger())

		capabilityRepo.On("SeedAll", ctx, mock.AnythingOfType("[]domain.Capability")).
			Return(catalogSize, nil)

		inserted, err := useCase.RegisterAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, catalogSize, inserted)
		capabilityRepo.AssertExpectations(t)
	})

	t.Run("Success_SecondRunIsNoOp", func(t *testing.T) {
		capabilityRepo := &mockCapabilityRepository{}
		useCase := NewRegistryUseCase(capabilityRepo, testLogger())

		capabilityRepo.On("SeedAll", ctx, mock.AnythingOfType("[]domain.Capability")).Return(0, nil)
		// With nothing inserted the use case re-reads each stored row to
		// detect divergence from the catalog.
		capabilityRepo.On("Get", ctx, mock.AnythingOfType("string")).
			Return(&authzDomain.Capability{IsSystemCritical: false}, nil)

		inserted, err := useCase.RegisterAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
	})

	t.Run("Error_SeedFailure", func(t *testing.T) {
		capabilityRepo := &mockCapabilityRepository{}
		useCase := NewRegistryUseCase(capabilityRepo, testLogger())

		capabilityRepo.On("SeedAll", ctx, mock.AnythingOfType("[]domain.Capability")).
			Return(0, assert.AnError)

		inserted, err := useCase.RegisterAll(ctx)
		assert.Error(t, err)
		assert.Equal(t, 0, inserted)
	})
}

func TestRegistryUseCase_Get(t *testing.T) {
	ctx := context.Background()
	capabilityRepo := &mockCapabilityRepository{}
	useCase := NewRegistryUseCase(capabilityRepo, testLogger())

	expected := &authzDomain.Capability{Key: "vehicle.manage"}
	capabilityRepo.On("Get", ctx, "vehicle.manage").Return(expected, nil)

	capability, err := useCase.Get(ctx, "vehicle.manage")
	require.NoError(t, err)
	assert.Equal(t, expected, capability)
}

func TestRegistryUseCase_ListByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ValidCategory", func(t *testing.T) {
		capabilityRepo := &mockCapabilityRepository{}
		useCase := NewRegistryUseCase(capabilityRepo, testLogger())

		expected := []*authzDomain.Capability{
			{Key: "tracking.view", Category: authzDomain.CategoryTracking},
			{Key: "tracking.history", Category: authzDomain.CategoryTracking},
		}
		capabilityRepo.On("ListByCategory", ctx, authzDomain.CategoryTracking).Return(expected, nil)

		capabilities, err := useCase.ListByCategory(ctx, authzDomain.CategoryTracking)
		require.NoError(t, err)
		assert.Equal(t, expected, capabilities)
	})

	t.Run("Error_UnknownCategory", func(t *testing.T) {
		capabilityRepo := &mockCapabilityRepository{}
		useCase := NewRegistryUseCase(capabilityRepo, testLogger())

		capabilities, err := useCase.ListByCategory(ctx, authzDomain.FeatureCategory("billing"))
		assert.Nil(t, capabilities)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		capabilityRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
	})
}

func TestRegistryUseCase_List(t *testing.T) {
	ctx := context.Background()
	capabilityRepo := &mockCapabilityRepository{}
	useCase := NewRegistryUseCase(capabilityRepo, testLogger())

	expected := []*authzDomain.Capability{{Key: "vehicle.manage"}}
	capabilityRepo.On("List", ctx).Return(expected, nil)

	capabilities, err := useCase.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, capabilities)
}
