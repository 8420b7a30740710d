// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fleet/internal/validation"
)

// CreateZoneRequest contains the parameters for creating a zone.
type CreateZoneRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create zone request is valid.
func (r *CreateZoneRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// UpdateZoneRequest contains the parameters for updating a zone.
type UpdateZoneRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the update zone request is valid.
func (r *UpdateZoneRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// CreateVehicleRequest contains the parameters for creating a vehicle.
type CreateVehicleRequest struct {
	ZoneID      string `json:"zone_id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model"`
}

// Validate checks if the create vehicle request is valid.
func (r *CreateVehicleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PlateNumber,
			validation.Required,
			validation.Length(1, 20),
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Model,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
	)
}

// AssignZoneRequest contains the parameters for assigning a resource to a
// zone. An empty zone_id clears the assignment.
type AssignZoneRequest struct {
	ZoneID string `json:"zone_id"`
}

// UpdateStatusRequest contains the parameters for changing a resource's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks if the update status request is valid.
func (r *UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// CreateDriverRequest contains the parameters for creating a driver.
type CreateDriverRequest struct {
	ZoneID        string `json:"zone_id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
}

// Validate checks if the create driver request is valid.
func (r *CreateDriverRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.LicenseNumber,
			validation.Required,
			validation.Length(1, 50),
			customValidation.NoWhitespace,
		),
	)
}
