package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
	"github.com/allisson/fleet/internal/testutil"
)

func newTestZone(organizationID uuid.UUID, name string) *fleetDomain.Zone {
	now := time.Now().UTC()
	return &fleetDomain.Zone{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: organizationID,
		Name:           name,
		Description:    "A zone for testing",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestNewPostgreSQLZoneRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLZoneRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	zone := newTestZone(organizationID, "North District")

	err := repo.Create(ctx, zone)
	require.NoError(t, err)

	created, err := repo.Get(ctx, organizationID, zone.ID)
	require.NoError(t, err)
	assert.Equal(t, zone.ID, created.ID)
	assert.Equal(t, "North District", created.Name)
	assert.Equal(t, organizationID, created.OrganizationID)
}

func TestPostgreSQLZoneRepository_Get_ScopedToOrganization(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	otherOrganizationID := testutil.CreateTestOrganization(t, db, "postgres", "wayne-freight")

	zone := newTestZone(organizationID, "North District")
	require.NoError(t, repo.Create(ctx, zone))

	// Another organization cannot see the zone
	hidden, err := repo.Get(ctx, otherOrganizationID, zone.ID)
	assert.Nil(t, hidden)
	assert.True(t, apperrors.Is(err, fleetDomain.ErrZoneNotFound))
}

func TestPostgreSQLZoneRepository_ListByOrganization(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")

	require.NoError(t, repo.Create(ctx, newTestZone(organizationID, "South District")))
	require.NoError(t, repo.Create(ctx, newTestZone(organizationID, "North District")))

	zones, err := repo.ListByOrganization(ctx, organizationID)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	// Ordered by name
	assert.Equal(t, "North District", zones[0].Name)
	assert.Equal(t, "South District", zones[1].Name)
}

func TestPostgreSQLZoneRepository_Update(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	zone := newTestZone(organizationID, "North District")
	require.NoError(t, repo.Create(ctx, zone))

	zone.Name = "Northern Region"
	zone.Description = "Renamed"
	zone.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, zone))

	updated, err := repo.Get(ctx, organizationID, zone.ID)
	require.NoError(t, err)
	assert.Equal(t, "Northern Region", updated.Name)
	assert.Equal(t, "Renamed", updated.Description)
}

func TestPostgreSQLZoneRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLZoneRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	zone := newTestZone(organizationID, "North District")
	require.NoError(t, repo.Create(ctx, zone))

	require.NoError(t, repo.Delete(ctx, organizationID, zone.ID))

	err := repo.Delete(ctx, organizationID, zone.ID)
	assert.True(t, apperrors.Is(err, fleetDomain.ErrZoneNotFound))
}
