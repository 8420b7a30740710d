package domain

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus is the working state of a driver.
type DriverStatus string

// Driver statuses.
const (
	DriverStatusAvailable DriverStatus = "available"
	DriverStatusOnTrip    DriverStatus = "on_trip"
	DriverStatusOffDuty   DriverStatus = "off_duty"
)

// IsValid reports whether the status is one of the known driver statuses.
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverStatusAvailable, DriverStatusOnTrip, DriverStatusOffDuty:
		return true
	}
	return false
}

// Driver is a fleet driver. UserID links the driver to a user account when
// the driver logs into the system; ZoneID is nil while unassigned.
type Driver struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ZoneID         *uuid.UUID
	UserID         *uuid.UUID
	Name           string
	LicenseNumber  string
	Status         DriverStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
