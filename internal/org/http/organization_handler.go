package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
	"github.com/allisson/fleet/internal/org/http/dto"
	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// OrganizationHandler handles HTTP requests for organization management.
type OrganizationHandler struct {
	organizationUseCase orgUseCase.OrganizationUseCase
	logger              *slog.Logger
}

// NewOrganizationHandler creates a new organization handler with required dependencies.
func NewOrganizationHandler(
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		organizationUseCase: organizationUseCase,
		logger:              logger,
	}
}

// CreateHandler creates a new organization.
// POST /v1/organizations - Requires organization.manage at full level.
// Returns 201 Created with the new organization.
func (h *OrganizationHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateOrganizationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &orgUseCase.CreateOrganizationInput{
		Slug: req.Slug,
		Name: req.Name,
	}

	organization, err := h.organizationUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapOrganizationToResponse(organization)
	c.JSON(http.StatusCreated, response)
}

// GetCurrentHandler retrieves the organization the caller is acting in.
// GET /v1/organizations/current - Requires authentication only.
// Returns 200 OK with the organization.
func (h *OrganizationHandler) GetCurrentHandler(c *gin.Context) {
	organization, ok := GetOrganization(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	response := dto.MapOrganizationToResponse(organization)
	c.JSON(http.StatusOK, response)
}
