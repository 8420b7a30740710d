package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/fleet/http/dto"
	fleetUseCase "github.com/allisson/fleet/internal/fleet/usecase"
	"github.com/allisson/fleet/internal/httputil"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// ZoneHandler handles HTTP requests for zone management.
type ZoneHandler struct {
	zoneUseCase fleetUseCase.ZoneUseCase
	logger      *slog.Logger
}

// NewZoneHandler creates a new zone handler with required dependencies.
func NewZoneHandler(zoneUseCase fleetUseCase.ZoneUseCase, logger *slog.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUseCase: zoneUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new zone in the caller's organization.
// POST /v1/zones - Requires zone.manage at full level.
// Returns 201 Created with the new zone.
func (h *ZoneHandler) CreateHandler(c *gin.Context) {
	organizationID, _, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateZoneRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &fleetUseCase.CreateZoneInput{
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
	}

	zone, err := h.zoneUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapZoneToResponse(zone)
	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a zone by ID.
// GET /v1/zones/:id - Requires zone.manage at view level.
// Returns 200 OK with the zone.
func (h *ZoneHandler) GetHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid zone id"),
			h.logger,
		)
		return
	}

	zone, err := h.zoneUseCase.Get(c.Request.Context(), organizationID, zoneID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapZoneToResponse(zone)
	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves the organization's zones visible to the caller.
// GET /v1/zones - Requires zone.manage at view level.
// Returns 200 OK with the zone list.
func (h *ZoneHandler) ListHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	zones, err := h.zoneUseCase.List(c.Request.Context(), organizationID, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapZonesToListResponse(zones)
	c.JSON(http.StatusOK, response)
}

// UpdateHandler modifies a zone's name and description.
// PUT /v1/zones/:id - Requires zone.manage at full level.
// Returns 200 OK with the updated zone.
func (h *ZoneHandler) UpdateHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid zone id"),
			h.logger,
		)
		return
	}

	var req dto.UpdateZoneRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &fleetUseCase.UpdateZoneInput{
		Name:        req.Name,
		Description: req.Description,
	}

	zone, err := h.zoneUseCase.Update(c.Request.Context(), organizationID, zoneID, input, constraints)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapZoneToResponse(zone)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a zone.
// DELETE /v1/zones/:id - Requires zone.manage at full level.
// Returns 204 No Content.
func (h *ZoneHandler) DeleteHandler(c *gin.Context) {
	organizationID, constraints, err := requestScope(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid zone id"),
			h.logger,
		)
		return
	}

	if err := h.zoneUseCase.Delete(c.Request.Context(), organizationID, zoneID, constraints); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
