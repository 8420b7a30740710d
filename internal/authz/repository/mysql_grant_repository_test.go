package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/testutil"
)

func TestNewMySQLGrantRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLGrantRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMySQLGrantRepository_Upsert(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "mysql", "fleet_manager", nil)
	capabilityKey := testutil.CreateTestCapability(t, db, "mysql", "vehicle.manage")

	grant := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelView)
	require.NoError(t, repo.Upsert(ctx, grant))

	zoneID := uuid.Must(uuid.NewV7())
	replacement := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelFull)
	replacement.Constraints = &authzDomain.GrantConstraints{ZoneIDs: []uuid.UUID{zoneID}}
	require.NoError(t, repo.Upsert(ctx, replacement))

	updated, err := repo.Get(ctx, roleID, capabilityKey)
	require.NoError(t, err)
	assert.Equal(t, authzDomain.AccessLevelFull, updated.AccessLevel)
	require.NotNil(t, updated.Constraints)
	assert.Equal(t, []uuid.UUID{zoneID}, updated.Constraints.ZoneIDs)
}

func TestMySQLGrantRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "mysql", "fleet_manager", nil)
	capabilityKey := testutil.CreateTestCapability(t, db, "mysql", "vehicle.manage")

	created, err := repo.CreateIfAbsent(ctx, newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelFull))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelView))
	require.NoError(t, err)
	assert.False(t, created)

	existing, err := repo.Get(ctx, roleID, capabilityKey)
	require.NoError(t, err)
	assert.Equal(t, authzDomain.AccessLevelFull, existing.AccessLevel)
}

func TestMySQLGrantRepository_ListByRoleAndDelete(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	repo := NewMySQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "mysql", "fleet_manager", nil)
	vehicleKey := testutil.CreateTestCapability(t, db, "mysql", "vehicle.manage")
	tripKey := testutil.CreateTestCapability(t, db, "mysql", "trip.manage")

	require.NoError(t, repo.Upsert(ctx, newTestGrant(roleID, vehicleKey, authzDomain.AccessLevelFull)))
	require.NoError(t, repo.Upsert(ctx, newTestGrant(roleID, tripKey, authzDomain.AccessLevelView)))

	grants, err := repo.ListByRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, "trip.manage", grants[0].CapabilityKey)
	assert.Equal(t, "vehicle.manage", grants[1].CapabilityKey)

	require.NoError(t, repo.Delete(ctx, roleID, vehicleKey))

	err = repo.Delete(ctx, roleID, vehicleKey)
	assert.True(t, apperrors.Is(err, authzDomain.ErrGrantNotFound))
}
