package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// driverUseCase implements DriverUseCase.
type driverUseCase struct {
	driverRepo DriverRepository
	zoneRepo   ZoneRepository
}

// NewDriverUseCase creates a new DriverUseCase with the provided dependencies.
func NewDriverUseCase(driverRepo DriverRepository, zoneRepo ZoneRepository) DriverUseCase {
	return &driverUseCase{
		driverRepo: driverRepo,
		zoneRepo:   zoneRepo,
	}
}

// Create creates a new driver, optionally assigned to a zone the caller's
// constraints allow.
func (d *driverUseCase) Create(
	ctx context.Context,
	input *CreateDriverInput,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Driver, error) {
	if err := d.checkZone(ctx, input.OrganizationID, input.ZoneID, constraints); err != nil {
		return nil, err
	}

	driver := &fleetDomain.Driver{
		ID:             uuid.Must(uuid.NewV7()),
		OrganizationID: input.OrganizationID,
		ZoneID:         input.ZoneID,
		UserID:         input.UserID,
		Name:           strings.TrimSpace(input.Name),
		LicenseNumber:  strings.TrimSpace(input.LicenseNumber),
		Status:         fleetDomain.DriverStatusAvailable,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := d.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Get retrieves a driver the caller's constraints allow.
func (d *driverUseCase) Get(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Driver, error) {
	driver, err := d.driverRepo.Get(ctx, organizationID, driverID)
	if err != nil {
		return nil, err
	}

	if !constraints.AllowsZone(driver.ZoneID) {
		return nil, fleetDomain.ErrZoneAccessDenied
	}
	return driver, nil
}

// List retrieves the organization's drivers. A constrained grant narrows
// the query to the allowed zones.
func (d *driverUseCase) List(
	ctx context.Context,
	organizationID uuid.UUID,
	offset, limit int,
	constraints *authzDomain.GrantConstraints,
) ([]*fleetDomain.Driver, error) {
	var zoneIDs []uuid.UUID
	if !constraints.IsZero() {
		zoneIDs = constraints.ZoneIDs
	}
	return d.driverRepo.List(ctx, organizationID, zoneIDs, offset, limit)
}

// AssignZone moves a driver to a zone. Both the current and target zones
// must pass the caller's constraints; a nil zoneID clears the assignment.
func (d *driverUseCase) AssignZone(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
	zoneID *uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Driver, error) {
	driver, err := d.Get(ctx, organizationID, driverID, constraints)
	if err != nil {
		return nil, err
	}

	if err := d.checkZone(ctx, organizationID, zoneID, constraints); err != nil {
		return nil, err
	}

	driver.ZoneID = zoneID
	driver.UpdatedAt = time.Now().UTC()

	if err := d.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// UpdateStatus changes a driver's working status.
func (d *driverUseCase) UpdateStatus(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
	status fleetDomain.DriverStatus,
	constraints *authzDomain.GrantConstraints,
) (*fleetDomain.Driver, error) {
	if !status.IsValid() {
		return nil, fleetDomain.ErrInvalidStatus
	}

	driver, err := d.Get(ctx, organizationID, driverID, constraints)
	if err != nil {
		return nil, err
	}

	driver.Status = status
	driver.UpdatedAt = time.Now().UTC()

	if err := d.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Delete removes a driver the caller's constraints allow.
func (d *driverUseCase) Delete(
	ctx context.Context,
	organizationID, driverID uuid.UUID,
	constraints *authzDomain.GrantConstraints,
) error {
	if _, err := d.Get(ctx, organizationID, driverID, constraints); err != nil {
		return err
	}
	return d.driverRepo.Delete(ctx, organizationID, driverID)
}

// checkZone verifies the target zone exists in the organization and passes
// the caller's constraints. A nil zoneID is an unassignment and only needs
// an unrestricted grant.
func (d *driverUseCase) checkZone(
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

	if _, err := d.zoneRepo.Get(ctx, organizationID, *zoneID); err != nil {
		return err
	}

	if !constraints.AllowsZone(zoneID) {
		return fleetDomain.ErrZoneAccessDenied
	}
	return nil
}
