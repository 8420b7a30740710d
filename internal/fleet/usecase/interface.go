// Package usecase implements the fleet business logic. Every operation is
// organization scoped and honors the zone constraints carried by the
// caller's capability grant.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// ZoneRepository defines persistence operations for zones.
type ZoneRepository interface {
	// Create stores a new zone.
	Create(ctx context.Context, zone *fleetDomain.Zone) error

	// Get retrieves a zone scoped to the organization.
	Get(ctx context.Context, organizationID, zoneID uuid.UUID) (*fleetDomain.Zone, error)

	// ListByOrganization retrieves the organization's zones.
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*fleetDomain.Zone, error)

	// Update modifies an existing zone.
	Update(ctx context.Context, zone *fleetDomain.Zone) error

	// Delete removes a zone scoped to the organization.
	Delete(ctx context.Context, organizationID, zoneID uuid.UUID) error
}

// VehicleRepository defines persistence operations for vehicles.
type VehicleRepository interface {
	// Create stores a new vehicle.
	Create(ctx context.Context, vehicle *fleetDomain.Vehicle) error

	// Get retrieves a vehicle scoped to the organization.
	Get(ctx context.Context, organizationID, vehicleID uuid.UUID) (*fleetDomain.Vehicle, error)

	// GetByPlate retrieves a vehicle by plate number inside the organization.
	GetByPlate(
		ctx context.Context,
		organizationID uuid.UUID,
		plateNumber string,
	) (*fleetDomain.Vehicle, error)

	// List retrieves the organization's vehicles, optionally filtered by zones.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		zoneIDs []uuid.UUID,
		offset, limit int,
	) ([]*fleetDomain.Vehicle, error)

	// Update modifies an existing vehicle.
	Update(ctx context.Context, vehicle *fleetDomain.Vehicle) error

	// Delete removes a vehicle scoped to the organization.
	Delete(ctx context.Context, organizationID, vehicleID uuid.UUID) error
}

// DriverRepository defines persistence operations for drivers.
type DriverRepository interface {
	// Create stores a new driver.
	Create(ctx context.Context, driver *fleetDomain.Driver) error

	// Get retrieves a driver scoped to the organization.
	Get(ctx context.Context, organizationID, driverID uuid.UUID) (*fleetDomain.Driver, error)

	// List retrieves the organization's drivers, optionally filtered by zones.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		zoneIDs []uuid.UUID,
		offset, limit int,
	) ([]*fleetDomain.Driver, error)

	// Update modifies an existing driver.
	Update(ctx context.Context, driver *fleetDomain.Driver) error

	// Delete removes a driver scoped to the organization.
	Delete(ctx context.Context, organizationID, driverID uuid.UUID) error
}

// CreateZoneInput contains the parameters for creating a zone.
type CreateZoneInput struct {
	OrganizationID uuid.UUID
	Name           string
	Description    string
}

// UpdateZoneInput contains the parameters for updating a zone.
type UpdateZoneInput struct {
	Name        string
	Description string
}

// ZoneUseCase manages the zone lifecycle. Zone constraints on the caller's
// grant restrict which zones can be read or changed.
type ZoneUseCase interface {
	// Create creates a new zone in the organization.
	Create(ctx context.Context, input *CreateZoneInput) (*fleetDomain.Zone, error)

	// Get retrieves a zone the caller's constraints allow.
	Get(
		ctx context.Context,
		organizationID, zoneID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Zone, error)

	// List retrieves the organization's zones the caller's constraints allow.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) ([]*fleetDomain.Zone, error)

	// Update modifies a zone the caller's constraints allow.
	Update(
		ctx context.Context,
		organizationID, zoneID uuid.UUID,
		input *UpdateZoneInput,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Zone, error)

	// Delete removes a zone the caller's constraints allow.
	Delete(
		ctx context.Context,
		organizationID, zoneID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) error
}

// CreateVehicleInput contains the parameters for creating a vehicle.
type CreateVehicleInput struct {
	OrganizationID uuid.UUID
	ZoneID         *uuid.UUID
	PlateNumber    string
	Model          string
}

// VehicleUseCase manages the vehicle lifecycle. Zone constraints on the
// caller's grant restrict which vehicles can be read or changed.
type VehicleUseCase interface {
	// Create creates a new vehicle, optionally assigned to a zone the
	// caller's constraints allow.
	Create(
		ctx context.Context,
		input *CreateVehicleInput,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Vehicle, error)

	// Get retrieves a vehicle the caller's constraints allow.
	Get(
		ctx context.Context,
		organizationID, vehicleID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Vehicle, error)

	// List retrieves the organization's vehicles, restricted to the caller's
	// allowed zones when the grant is constrained.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		offset, limit int,
		constraints *authzDomain.GrantConstraints,
	) ([]*fleetDomain.Vehicle, error)

	// AssignZone moves a vehicle to a zone. Both the vehicle's current zone
	// and the target zone must pass the caller's constraints.
	AssignZone(
		ctx context.Context,
		organizationID, vehicleID uuid.UUID,
		zoneID *uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Vehicle, error)

	// UpdateStatus changes a vehicle's operational status.
	UpdateStatus(
		ctx context.Context,
		organizationID, vehicleID uuid.UUID,
		status fleetDomain.VehicleStatus,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Vehicle, error)

	// Delete removes a vehicle the caller's constraints allow.
	Delete(
		ctx context.Context,
		organizationID, vehicleID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) error
}

// CreateDriverInput contains the parameters for creating a driver.
type CreateDriverInput struct {
	OrganizationID uuid.UUID
	ZoneID         *uuid.UUID
	UserID         *uuid.UUID
	Name           string
	LicenseNumber  string
}

// DriverUseCase manages the driver lifecycle. Zone constraints on the
// caller's grant restrict which drivers can be read or changed.
type DriverUseCase interface {
	// Create creates a new driver, optionally assigned to a zone the
	// caller's constraints allow.
	Create(
		ctx context.Context,
		input *CreateDriverInput,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Driver, error)

	// Get retrieves a driver the caller's constraints allow.
	Get(
		ctx context.Context,
		organizationID, driverID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Driver, error)

	// List retrieves the organization's drivers, restricted to the caller's
	// allowed zones when the grant is constrained.
	List(
		ctx context.Context,
		organizationID uuid.UUID,
		offset, limit int,
		constraints *authzDomain.GrantConstraints,
	) ([]*fleetDomain.Driver, error)

	// AssignZone moves a driver to a zone. Both the driver's current zone
	// and the target zone must pass the caller's constraints.
	AssignZone(
		ctx context.Context,
		organizationID, driverID uuid.UUID,
		zoneID *uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Driver, error)

	// UpdateStatus changes a driver's working status.
	UpdateStatus(
		ctx context.Context,
		organizationID, driverID uuid.UUID,
		status fleetDomain.DriverStatus,
		constraints *authzDomain.GrantConstraints,
	) (*fleetDomain.Driver, error)

	// Delete removes a driver the caller's constraints allow.
	Delete(
		ctx context.Context,
		organizationID, driverID uuid.UUID,
		constraints *authzDomain.GrantConstraints,
	) error
}
