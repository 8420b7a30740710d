package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// vehicleUseCase implements VehicleUseCase.
type vehicleUseCase struct {
	vehicleRepo VehicleRepository
	zoneRepo    ZoneRepository
}

// NewVehicleUseCase creates a new VehicleUseCase with the provided dependencies.
func NewVehicleUseCase(vehicleRepo VehicleRepository, zoneRepo ZoneRepository) VehicleUseCase {
	return &vehicleUseCase{
		vehicleRepo: vehicleRepo,
		zoneRepo:    zoneRepo,
	}
}

// Create creates a new vehicle, optionally assigned to a zone the caller's
// constraints allow.
func (v *vehicleUseCase) Create(
	ctx context.Context,
	input *CreateVehicleInput,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Vehicle, error) {
	plateNumber := strings.ToUpper(strings.TrimSpace(input.PlateNumber))

	_, err := v.vehicleRepo.GetByPlate(ctx, input.OrganizationID, plateNumber)
	if err == nil {
		return nil, fleetDomain.ErrVehicleAlreadyExists
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := v.checkZone(ctx, input.OrganizationID, input.ZoneID, constraints); err != nil {
		return nil, err
	}

	vehicle := &fleetDomain.Vehicle{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		ZoneID:         input.ZoneID,
		PlateNumber:    plateNumber,
		Model:          strings.TrimSpace(input.Model),
		Status:         fleetDomain.VehicleStatusActive,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := v.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Get retrieves a vehicle the caller's constraints allow.
func (v *vehicleUseCase) Get(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Vehicle, error) {
	vehicle, err := v.vehicleRepo.Get(ctx, organizationID, vehicleID)
	if err != nil {
		return nil, err
	}

	if !constraints.AllowsZone(vehicle.ZoneID) {
		return nil, fleetDomain.ErrZoneAccessDenied
	}
	return vehicle, nil
}

// List retrieves the organization's vehicles. A constrained grant narrows
// the query to the allowed zones.
func (v *vehicleUseCase) List(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
	constraints *authzDomain.GrantConstraints,
) ([]*fleetDomain.Vehicle, error) {
	var zoneIDs []uuid.UUID
	if !constraints.IsZero() {
		zoneIDs = constraints.ZoneIDs
	}
	return v.vehicleRepo.List(ctx, organizationID, zoneIDs, offset, limit)
}

// AssignZone moves a vehicle to a zone. Both the current and target zones
// must pass the caller's constraints; a nil zoneID clears the assignment.
func (v *vehicleUseCase) AssignZone(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
	zoneID *uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Vehicle, error) {
	vehicle, err := v.Get(ctx, organizationID, vehicleID, constraints)
	if err != nil {
		return nil, err
	}

	if err := v.checkZone(ctx, organizationID, zoneID, constraints); err != nil {
		return nil, err
	}

	vehicle.ZoneID = zoneID
	vehicle.UpdatedAt = time.Now().UTC()

	if err := v.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateStatus changes a vehicle's operational status.
func (v *vehicleUseCase) UpdateStatus(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
	status fleetDomain.VehicleStatus,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Vehicle, error) {
	if !status.IsValid() {
		return nil, fleetDomain.ErrInvalidStatus
	}

	vehicle, err := v.Get(ctx, organizationID, vehicleID, constraints)
	if err != nil {
		return nil, err
	}

	vehicle.Status = status
	vehicle.UpdatedAt = time.Now().UTC()

	if err := v.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle the caller's constraints allow.
func (v *vehicleUseCase) Delete(
	ctx context.Context,
	organizationID, vehicleID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) error {
	if _, err := v.Get(ctx, organizationID, vehicleID, constraints); err != nil {
		return err
	}
	return v.vehicleRepo.Delete(ctx, organizationID, vehicleID)
}

// checkZone verifies the target zone exists in the organization and passes
// the caller's constraints. A nil zoneID is an unassignment and only needs
// an unrestricted grant.
func (v *vehicleUseCase) checkZone(
	ctx context.Context,
	organizationID uuid.UUID,
	zoneID *uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) error {
	if zoneID == nil {
		if !constraints.IsZero() {
			return fleetDomain.ErrZoneAccessDenied
		}
		return nil
	}

	if _, err := v.zoneRepo.Get(ctx, organizationID, *zoneID); err != nil {
		return err
	}

	if !constraints.AllowsZone(zoneID) {
		return fleetDomain.ErrZoneAccessDenied
	}
	return nil
}
