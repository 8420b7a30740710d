package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
	"github.com/allisson/fleet/internal/testutil"
)

func newTestMembership(organizationID, userID, roleID uuid.UUID) *orgDomain.Membership {
	now := time.Now().UTC()
	return &orgDomain.Membership{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: organizationID,
		UserID:         userID,
		RoleID:         roleID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestNewPostgreSQLMembershipRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLMembershipRepository_Create(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	userID := testutil.CreateTestUser(t, db, "postgres", "maria@acme.test")
	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)

	membership := newTestMembership(organizationID, userID, roleID)
	err := repo.Create(ctx, membership)
	require.NoError(t, err)

	created, err := repo.Get(ctx, organizationID, userID)
	require.NoError(t, err)
	assert.Equal(t, membership.ID, created.ID)
	assert.Equal(t, roleID, created.RoleID)
	assert.True(t, created.IsActive)
}

func TestPostgreSQLMembershipRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	membership, err := repo.Get(ctx, uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()))
	assert.Error(t, err)
	assert.Nil(t, membership)
	assert.True(t, apperrors.Is(err, orgDomain.ErrMembershipNotFound))
}

func TestPostgreSQLMembershipRepository_ListByOrganization(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	otherOrganizationID := testutil.CreateTestOrganization(t, db, "postgres", "wayne-freight")
	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)

	firstUserID := testutil.CreateTestUser(t, db, "postgres", "maria@acme.test")
	secondUserID := testutil.CreateTestUser(t, db, "postgres", "carlos@acme.test")
	outsiderID := testutil.CreateTestUser(t, db, "postgres", "bruce@wayne.test")

	require.NoError(t, repo.Create(ctx, newTestMembership(organizationID, firstUserID, roleID)))
	require.NoError(t, repo.Create(ctx, newTestMembership(organizationID, secondUserID, roleID)))
	require.NoError(t, repo.Create(ctx, newTestMembership(otherOrganizationID, outsiderID, roleID)))

	memberships, err := repo.ListByOrganization(ctx, organizationID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, memberships, 2)

	page, err := repo.ListByOrganization(ctx, organizationID, 0, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestPostgreSQLMembershipRepository_Update(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	userID := testutil.CreateTestUser(t, db, "postgres", "maria@acme.test")
	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)
	newRoleID := testutil.CreateTestRole(t, db, "postgres", "dispatcher", nil)

	membership := newTestMembership(organizationID, userID, roleID)
	require.NoError(t, repo.Create(ctx, membership))

	membership.RoleID = newRoleID
	membership.IsActive = false
	membership.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, membership))

	updated, err := repo.Get(ctx, organizationID, userID)
	require.NoError(t, err)
	assert.Equal(t, newRoleID, updated.RoleID)
	assert.False(t, updated.IsActive)
}

func TestPostgreSQLMembershipRepository_Delete(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	userID := testutil.CreateTestUser(t, db, "postgres", "maria@acme.test")
	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)

	membership := newTestMembership(organizationID, userID, roleID)
	require.NoError(t, repo.Create(ctx, membership))

	require.NoError(t, repo.Delete(ctx, membership.ID))

	err := repo.Delete(ctx, membership.ID)
	assert.True(t, apperrors.Is(err, orgDomain.ErrMembershipNotFound))
}

func TestPostgreSQLMembershipRepository_ResolveRoleID(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLMembershipRepository(db)
	ctx := context.Background()

	organizationID := testutil.CreateTestOrganization(t, db, "postgres", "acme-logistics")
	userID := testutil.CreateTestUser(t, db, "postgres", "maria@acme.test")
	roleID := testutil.CreateTestRole(t, db, "postgres", "fleet_manager", nil)

	membership := newTestMembership(organizationID, userID, roleID)
	require.NoError(t, repo.Create(ctx, membership))

	resolved, err := repo.ResolveRoleID(ctx, organizationID, userID)
	require.NoError(t, err)
	assert.Equal(t, roleID, resolved)

	// Inactive memberships do not resolve
	membership.IsActive = false
	membership.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, membership))

	resolved, err = repo.ResolveRoleID(ctx, organizationID, userID)
	assert.Equal(t, uuid.Nil, resolved)
	assert.True(t, apperrors.Is(err, orgDomain.ErrMembershipNotFound))
}
