package domain

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus is the operational state of a vehicle.
type VehicleStatus string

// Vehicle statuses.
const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// IsValid reports whether the status is one of the known vehicle statuses.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusRetired:
		return true
	}
	return false
}

// Vehicle is a fleet vehicle. ZoneID is nil while the vehicle is unassigned.
type Vehicle struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ZoneID         *uuid.UUID
	PlateNumber    string
	Model          string
	Status         VehicleStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
