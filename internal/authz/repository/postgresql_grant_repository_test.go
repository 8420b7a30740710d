package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/testutil"
)

func newTestGrant(roleID uuid.UUID, capabilityKey string, level authzDomain.AccessLevel) *authzDomain.RoleCapabilityGrant {
	return &authzDomain.RoleCapabilityGrant{
		ID:            uuid.Must(uuid.NewV7()),
		RoleID:        roleID,
		CapabilityKey: capabilityKey,
		AccessLevel:   level,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestNewPostgreSQLGrantRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLGrantRepository_Upsert(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)
	capabilityKey := testutil.CreateTestCapability(t, db, "postgres", "vehicle.manage")

	grant := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelView)
	err := repo.Upsert(ctx, grant)
	require.NoError(t, err)

	created, err := repo.Get(ctx, roleID, capabilityKey)
	require.NoError(t, err)
	assert.Equal(t, authzDomain.AccessLevelView, created.AccessLevel)
	assert.Nil(t, created.Constraints)

	// Upserting the same pair changes the level and constraints in place
	zoneID := uuid.Must(uuid.NewV7())
	replacement := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelFull)
	replacement.Constraints = &authzDomain.GrantConstraints{ZoneIDs: []uuid.UUID{zoneID}}
	err = repo.Upsert(ctx, replacement)
	require.NoError(t, err)

	updated, err := repo.Get(ctx, roleID, capabilityKey)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, authzDomain.AccessLevelFull, updated.AccessLevel)
	require.NotNil(t, updated.Constraints)
	assert.Equal(t, []uuid.UUID{zoneID}, updated.Constraints.ZoneIDs)
}

func TestPostgreSQLGrantRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)
	capabilityKey := testutil.CreateTestCapability(t, db, "postgres", "vehicle.manage")

	grant := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelFull)
	created, err := repo.CreateIfAbsent(ctx, grant)
	require.NoError(t, err)
	assert.True(t, created)

	// Seeding again leaves the existing grant untouched
	duplicate := newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelView)
	created, err = repo.CreateIfAbsent(ctx, duplicate)
	require.NoError(t, err)
	assert.False(t, created)

	existing, err := repo.Get(ctx, roleID, capabilityKey)
	require.NoError(t, err)
	assert.Equal(t, authzDomain.AccessLevelFull, existing.AccessLevel)
}

func TestPostgreSQLGrantRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)

	grant, err := repo.Get(ctx, roleID, "vehicle.manage")
	assert.Error(t, err)
	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(err, authzDomain.ErrGrantNotFound))
}

func TestPostgreSQLGrantRepository_ListByRole(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)
	otherRoleID := testutil.CreateTestRole(t, db, "postgres", "dispatcher", nil)
	vehicleKey := testutil.CreateTestCapability(t, db, "postgres", "vehicle.manage")
	tripKey := testutil.CreateTestCapability(t, db, "postgres", "trip.manage")

	require.NoError(t, repo.Upsert(ctx, newTestGrant(roleID, vehicleKey, authzDomain.AccessLevelFull)))
	require.NoError(t, repo.Upsert(ctx, newTestGrant(roleID, tripKey, authzDomain.AccessLevelView)))
	require.NoError(t, repo.Upsert(ctx, newTestGrant(otherRoleID, tripKey, authzDomain.AccessLevelFull)))

	grants, err := repo.ListByRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	// Ordered by capability key
	assert.Equal(t, "trip.manage", grants[0].CapabilityKey)
	assert.Equal(t, "vehicle.manage", grants[1].CapabilityKey)
}

func TestPostgreSQLGrantRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLGrantRepository(db)
	ctx := context.Background()

	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)
	capabilityKey := testutil.CreateTestCapability(t, db, "postgres", "vehicle.manage")

	require.NoError(t, repo.Upsert(ctx, newTestGrant(roleID, capabilityKey, authzDomain.AccessLevelFull)))

	err := repo.Delete(ctx, roleID, capabilityKey)
	require.NoError(t, err)

	err = repo.Delete(ctx, roleID, capabilityKey)
	assert.True(t, apperrors.Is(err, authzDomain.ErrGrantNotFound))
}
