package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

func TestZoneUseCase_Create(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())

	zoneRepo := &mockZoneRepository{}
	useCase := NewZoneUseCase(zoneRepo)

	zoneRepo.On("Create", ctx, mock.AnythingOfType("*domain.Zone")).Return(nil)

	zone, err := useCase.Create(ctx, &CreateZoneInput{
		OrganizationID: organizationID,
		Name:           "  North District ",
		Description:    "Everything north of the river",
	})
	require.NoError(t, err)
	assert.Equal(t, "North District", zone.Name)
	assert.Equal(t, organizationID, zone.OrganizationID)
	assert.NotEqual(t, uuid.Nil, zone.ID)
}

func TestZoneUseCase_Get(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())
	zoneID := uuid.Must(uuid.NewV7())

	t.Run("Success_AllowedZone", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID}, nil)

		zone, err := useCase.Get(ctx, organizationID, zoneID, zoneConstraints(zoneID))
		require.NoError(t, err)
		assert.Equal(t, zoneID, zone.ID)
	})

	t.Run("Error_ZoneOutsideConstraints", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID}, nil)

		zone, err := useCase.Get(
			ctx, organizationID, zoneID,
			zoneConstraints(uuid.Must(uuid.NewV7())),
		)
		assert.Nil(t, zone)
		assert.ErrorIs(t, err, fleetDomain.ErrZoneAccessDenied)
	})

	t.Run("Error_ZoneNotFound", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).Return(nil, fleetDomain.ErrZoneNotFound)

		zone, err := useCase.Get(ctx, organizationID, zoneID, nil)
		assert.Nil(t, zone)
		assert.ErrorIs(t, err, fleetDomain.ErrZoneNotFound)
	})
}

func TestZoneUseCase_List(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())

	northID := uuid.Must(uuid.NewV7())
	southID := uuid.Must(uuid.NewV7())
	zones := []*fleetDomain.Zone{
		{ID: northID, OrganizationID: organizationID, Name: "North"},
		{ID: southID, OrganizationID: organizationID, Name: "South"},
	}

	t.Run("Success_UnrestrictedGrantListsAll", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("ListByOrganization", ctx, organizationID).Return(zones, nil)

		result, err := useCase.List(ctx, organizationID, nil)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("Success_ConstrainedGrantFiltersList", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("ListByOrganization", ctx, organizationID).Return(zones, nil)

		result, err := useCase.List(ctx, organizationID, zoneConstraints(southID))
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, southID, result[0].ID)
	})
}

func TestZoneUseCase_Update(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())
	zoneID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID, Name: "North"}, nil)
		zoneRepo.On("Update", ctx, mock.AnythingOfType("*domain.Zone")).Return(nil)

		zone, err := useCase.Update(ctx, organizationID, zoneID, &UpdateZoneInput{
			Name:        "North District",
			Description: "Renamed",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "North District", zone.Name)
		assert.Equal(t, "Renamed", zone.Description)
	})

	t.Run("Error_ZoneOutsideConstraints", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID}, nil)

		zone, err := useCase.Update(
			ctx, organizationID, zoneID,
			&UpdateZoneInput{Name: "X"},
			zoneConstraints(uuid.Must(uuid.NewV7())),
		)
		assert.Nil(t, zone)
		assert.ErrorIs(t, err, fleetDomain.ErrZoneAccessDenied)
		zoneRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestZoneUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.Must(uuid.NewV7())
	zoneID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID}, nil)
		zoneRepo.On("Delete", ctx, organizationID, zoneID).Return(nil)

		err := useCase.Delete(ctx, organizationID, zoneID, nil)
		assert.NoError(t, err)
		zoneRepo.AssertExpectations(t)
	})

	t.Run("Error_ZoneOutsideConstraints", func(t *testing.T) {
		zoneRepo := &mockZoneRepository{}
		useCase := NewZoneUseCase(zoneRepo)

		zoneRepo.On("Get", ctx, organizationID, zoneID).
			Return(&fleetDomain.Zone{ID: zoneID, OrganizationID: organizationID}, nil)

		err := useCase.Delete(
			ctx, organizationID, zoneID,
			zoneConstraints(uuid.Must(uuid.NewV7())),
		)
		assert.ErrorIs(t, err, fleetDomain.ErrZoneAccessDenied)
		zoneRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
