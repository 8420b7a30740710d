package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/testutil"
)

func TestNewMySQLCapabilityRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLCapabilityRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMySQLCapabilityRepository_SeedAll(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLCapabilityRepository(db)
	ctx := context.Background()

	levels := []authzDomain.AccessLevel{
		authzDomain.AccessLevelNone,
		authzDomain.AccessLevelView,
		authzDomain.AccessLevelFull,
	}
	capabilities := []authzDomain.Capability{
		{Key: "vehicle.manage", Category: authzDomain.CategoryVehicleManagement, Name: "Manage Vehicles", AccessLevels: levels},
		{Key: "role.manage", Category: authzDomain.CategoryRoleManagement, Name: "Manage Roles", AccessLevels: levels, IsSystemCritical: true},
	}

	inserted, err := repo.SeedAll(ctx, capabilities)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Repeated seeding inserts nothing
	inserted, err = repo.SeedAll(ctx, capabilities)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	capability, err := repo.Get(ctx, "role.manage")
	require.NoError(t, err)
	assert.Equal(t, "Manage Roles", capability.Name)
	assert.True(t, capability.IsSystemCritical)
	assert.Len(t, capability.AccessLevels, 3)
}

func TestMySQLCapabilityRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLCapabilityRepository(db)
	ctx := context.Background()

	capability, err := repo.Get(ctx, "vehicle.teleport")
	assert.Error(t, err)
	assert.Nil(t, capability)
	assert.True(t, apperrors.Is(err, authzDomain.ErrCapabilityNotFound))
}

func TestMySQLCapabilityRepository_List(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLCapabilityRepository(db)
	ctx := context.Background()

	levels := []authzDomain.AccessLevel{authzDomain.AccessLevelNone, authzDomain.AccessLevelFull}
	_, err := repo.SeedAll(ctx, []authzDomain.Capability{
		{Key: "zone.manage", Category: authzDomain.CategorySystem, Name: "Manage Zones", AccessLevels: levels},
		{Key: "driver.manage", Category: authzDomain.CategoryDriverManagement, Name: "Manage Drivers", AccessLevels: levels},
	})
	require.NoError(t, err)

	capabilities, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, capabilities, 2)
	assert.Equal(t, "driver.manage", capabilities[0].Key)
	assert.Equal(t, "zone.manage", capabilities[1].Key)

	byCategory, err := repo.ListByCategory(ctx, authzDomain.CategoryDriverManagement)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "driver.manage", byCategory[0].Key)
}
