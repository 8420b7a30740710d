// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
)

// ZoneResponse represents a zone in API responses.
type ZoneResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListZonesResponse represents a list of zones in API responses.
type ListZonesResponse struct {
	Data []ZoneResponse `json:"data"`
}

// MapZoneToResponse converts a domain zone to an API response.
func MapZoneToResponse(zone *fleetDomain.Zone) ZoneResponse {
	return ZoneResponse{
		ID:             zone.ID.String(),
		OrganizationID: zone.OrganizationID.String(),
		Name:           zone.Name,
		Description:    zone.Description,
		CreatedAt:      zone.CreatedAt,
		UpdatedAt:      zone.UpdatedAt,
	}
}

// MapZonesToListResponse converts domain zones to a list response.
func MapZonesToListResponse(zones []*fleetDomain.Zone) ListZonesResponse {
	data := make([]ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		data = append(data, MapZoneToResponse(zone))
	}

	return ListZonesResponse{
		Data: data,
	}
}

// VehicleResponse represents a vehicle in API responses.
type VehicleResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ZoneID         *string   `json:"zone_id,omitempty"`
	PlateNumber    string    `json:"plate_number"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListVehiclesResponse represents a paginated list of vehicles.
type ListVehiclesResponse struct {
	Data []VehicleResponse `json:"data"`
}

// MapVehicleToResponse converts a domain vehicle to an API response.
func MapVehicleToResponse(vehicle *fleetDomain.Vehicle) VehicleResponse {
	response := VehicleResponse{
		ID:             vehicle.ID.String(),
		OrganizationID: vehicle.OrganizationID.String(),
		PlateNumber:    vehicle.PlateNumber,
		Model:          vehicle.Model,
		Status:         string(vehicle.Status),
		CreatedAt:      vehicle.CreatedAt,
		UpdatedAt:      vehicle.UpdatedAt,
	}

	if vehicle.ZoneID != nil {
		zoneID := vehicle.ZoneID.String()
		response.ZoneID = &zoneID
	}

	return response
}

// MapVehiclesToListResponse converts domain vehicles to a list response.
func MapVehiclesToListResponse(vehicles []*fleetDomain.Vehicle) ListVehiclesResponse {
	data := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		data = append(data, MapVehicleToResponse(vehicle))
	}

	return ListVehiclesResponse{
		Data: data,
	}
}

// DriverResponse represents a driver in API responses.
type DriverResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ZoneID         *string   `json:"zone_id,omitempty"`
	UserID         *string   `json:"user_id,omitempty"`
	Name           string    `json:"name"`
	LicenseNumber  string    `json:"license_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListDriversResponse represents a paginated list of drivers.
type ListDriversResponse struct {
	Data []DriverResponse `json:"data"`
}

// MapDriverToResponse converts a domain driver to an API response.
func MapDriverToResponse(driver *fleetDomain.Driver) DriverResponse {
	response := DriverResponse{
		ID:             driver.ID.String(),
		OrganizationID: driver.OrganizationID.String(),
		Name:           driver.Name,
		LicenseNumber:  driver.LicenseNumber,
		Status:         string(driver.Status),
		CreatedAt:      driver.CreatedAt,
		UpdatedAt:      driver.UpdatedAt,
	}

	if driver.ZoneID != nil {
		zoneID := driver.ZoneID.String()
		response.ZoneID = &zoneID
	}
	if driver.UserID != nil {
		userID := driver.UserID.String()
		response.UserID = &userID
	}

	return response
}

// MapDriversToListResponse converts domain drivers to a list response.
func MapDriversToListResponse(drivers []*fleetDomain.Driver) ListDriversResponse {
	data := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		data = append(data, MapDriverToResponse(driver))
	}

	return ListDriversResponse{
		Data: data,
	}
}
