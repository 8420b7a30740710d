package domain

import (
	apperrors "github.com/allisson/fleet/internal/errors"
)

// Fleet errors wrapping the application sentinels for consistent HTTP mapping.
var (
	// ErrZoneNotFound is returned when a zone does not exist in the organization.
	ErrZoneNotFound = apperrors.Wrap(apperrors.ErrNotFound, "zone not found")

	// ErrVehicleNotFound is returned when a vehicle does not exist in the organization.
	ErrVehicleNotFound = apperrors.Wrap(apperrors.ErrNotFound, "vehicle not found")

	// ErrVehicleAlreadyExists is returned when a plate number is taken inside the organization.
	ErrVehicleAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "vehicle already exists")

	// ErrDriverNotFound is returned when a driver does not exist in the organization.
	ErrDriverNotFound = apperrors.Wrap(apperrors.ErrNotFound, "driver not found")

	// ErrInvalidStatus is returned for unknown vehicle or driver statuses.
	ErrInvalidStatus = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid status")

	// ErrZoneAccessDenied is returned when a grant's zone constraints exclude
	// the resource's zone.
	ErrZoneAccessDenied = apperrors.Wrap(apperrors.ErrForbidden, "zone access denied")
)
