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

// DriverHandler handles HTTP requests for driver management.
type DriverHandler struct {
	driverUseCase fleetUseCase.DriverUseCase
	logger        *slog.Logger
}

// NewDriverHandler creates a new driver handler with required dependencies.
func NewDriverHandler(driverUseCase fleetUseCase.DriverUseCase, logger *slog.Logger) *DriverHandler {
	return &DriverHandler{
		driverUseCase: driverUseCase,
		logger:        logger,
	}
}

// CreateHandler creates a new driver in the caller's organization.
// POST /v1/drivers - Requires driver.manage at full level.
// Returns 201 Created with the new driver.
func (h *DriverHandler) CreateHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateDriverRequest

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

	var userID *uuid.UUID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			httputil.HandleValidationErrorGin(
				c,
				apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
				h.logger,
			)
			return
		}
		userID = &parsed
	}

	input := &fleetUseCase.CreateDriverInput{
		OrganizationID: organizationID,
		ZoneID:         zoneID,
		UserID:         userID,
		Name:           req.Name,
		LicenseNumber:  req.LicenseNumber,
	}

	driver, err := h.driverUseCase.Create(c.Request.Context(), input, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDriverToResponse(driver)
	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a driver by ID.
// GET /v1/drivers/:id - Requires driver.manage at view level.
// Returns 200 OK with the driver.
func (h *DriverHandler) GetHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid driver id"),
			h.logger,
		)
		return
	}

	driver, err := h.driverUseCase.Get(c.Request.Context(), organizationID, driverID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDriverToResponse(driver)
	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves the organization's drivers visible to the caller.
// GET /v1/drivers?offset=0&limit=50 - Requires driver.manage at view level.
// Returns 200 OK with the paginated driver list.
func (h *DriverHandler) ListHandler(c *gin.Context) {
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

	drivers, err := h.driverUseCase.List(c.Request.Context(), organizationID, offset, limit, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDriversToListResponse(drivers)
	c.JSON(http.StatusOK, response)
}

// AssignZoneHandler moves a driver to a zone.
// PUT /v1/drivers/:id/zone - Requires driver.manage at full level.
// Returns 200 OK with the updated driver. An empty zone_id clears the assignment.
func (h *DriverHandler) AssignZoneHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid driver id"),
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

	driver, err := h.driverUseCase.AssignZone(
		c.Request.Context(),
		organizationID,
		driverID,
		zoneID,
		constraints,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDriverToResponse(driver)
	c.JSON(http.StatusOK, response)
}

// UpdateStatusHandler changes a driver's working status.
// PUT /v1/drivers/:id/status - Requires driver.schedule at limited level.
// Returns 200 OK with the updated driver.
func (h *DriverHandler) UpdateStatusHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid driver id"),
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

	driver, err := h.driverUseCase.UpdateStatus(
		c.Request.Context(),
		organizationID,
		driverID,
		fleetDomain.DriverStatus(req.Status),
		constraints,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapDriverToResponse(driver)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a driver.
// DELETE /v1/drivers/:id - Requires driver.manage at full level.
// Returns 204 No Content.
func (h *DriverHandler) DeleteHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid driver id"),
			h.logger,
		)
		return
	}

	err = h.driverUseCase.Delete(c.Request.Context(), organizationID, driverID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
