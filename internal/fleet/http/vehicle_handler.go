package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/fleet/internal/errors"
	fleetDomain "github.com/allisson/fleet/internal/fleet/domain"
	"github.com/allisson/fleet/internal/fleet/http/dto"
	fleetUseCase "github.com/allisson/fleet/internal/fleet/usecase"
	"github.com/allisson/fleet/internal/httputil"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// VehicleHandler handles HTTP requests for vehicle management.
type VehicleHandler struct {
	vehicleUseCase fleetUseCase.VehicleUseCase
	logger         *slog.Logger
}

// NewVehicleHandler creates a new vehicle handler with required dependencies.
func NewVehicleHandler(
	vehicleUseCase fleetUseCase.VehicleUseCase,
	logger *slog.Logger,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleUseCase: vehicleUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a new vehicle in the caller's organization.
// POST /v1/vehicles - Requires vehicle.manage at full level.
// Returns 201 Created with the new vehicle.
func (h *VehicleHandler) CreateHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateVehicleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	zoneID, err := parseOptionalZoneID(req.ZoneID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &fleetUseCase.CreateVehicleInput{
		OrganizationID: organizationID,
		ZoneID:         zoneID,
		PlateNumber:    req.PlateNumber,
		Model:          req.Model,
	}

	vehicle, err := h.vehicleUseCase.Create(c.Request.Context(), input, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVehicleToResponse(vehicle)
	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a vehicle by ID.
// GET /v1/vehicles/:id - Requires vehicle.manage at view level.
// Returns 200 OK with the vehicle.
func (h *VehicleHandler) GetHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid vehicle id"),
			h.logger,
		)
		return
	}

	vehicle, err := h.vehicleUseCase.Get(c.Request.Context(), organizationID, vehicleID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVehicleToResponse(vehicle)
	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves the organization's vehicles visible to the caller.
// GET /v1/vehicles?offset=0&limit=50 - Requires vehicle.manage at view level.
// Returns 200 OK with the paginated vehicle list.
func (h *VehicleHandler) ListHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	vehicles, err := h.vehicleUseCase.List(c.Request.Context(), organizationID, offset, limit, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVehiclesToListResponse(vehicles)
	c.JSON(http.StatusOK, response)
}

// AssignZoneHandler moves a vehicle to a zone.
// PUT /v1/vehicles/:id/zone - Requires vehicle.assign at full level.
// Returns 200 OK with the updated vehicle. An empty zone_id clears the assignment.
func (h *VehicleHandler) AssignZoneHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid vehicle id"),
			h.logger,
		)
		return
	}

	var req dto.AssignZoneRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	zoneID, err := parseOptionalZoneID(req.ZoneID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	vehicle, err := h.vehicleUseCase.AssignZone(
		c.Request.Context(),
		organizationID,
		vehicleID,
		zoneID,
		constraints,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVehicleToResponse(vehicle)
	c.JSON(http.StatusOK, response)
}

// UpdateStatusHandler changes a vehicle's operational status.
// PUT /v1/vehicles/:id/status - Requires vehicle.manage at limited level.
// Returns 200 OK with the updated vehicle.
func (h *VehicleHandler) UpdateStatusHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid vehicle id"),
			h.logger,
		)
		return
	}

	var req dto.UpdateStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	vehicle, err := h.vehicleUseCase.UpdateStatus(
		c.Request.Context(),
		organizationID,
		vehicleID,
		fleetDomain.VehicleStatus(req.Status),
		constraints,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVehicleToResponse(vehicle)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a vehicle.
// DELETE /v1/vehicles/:id - Requires vehicle.manage at full level.
// Returns 204 No Content.
func (h *VehicleHandler) DeleteHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid vehicle id"),
			h.logger,
		)
		return
	}

	err = h.vehicleUseCase.Delete(c.Request.Context(), organizationID, vehicleID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
