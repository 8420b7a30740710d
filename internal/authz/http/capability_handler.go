package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/authz/http/dto"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	"github.com/allisson/fleet/internal/httputil"
)

// CapabilityHandler handles HTTP requests for the capability registry.
// The registry is fixed at build time; these endpoints are read-only.
type CapabilityHandler struct {
	registryUseCase authzUseCase.RegistryUseCase
	logger          *slog.Logger
}

// NewCapabilityHandler creates a new capability handler with required dependencies.
func NewCapabilityHandler(
	registryUseCase authzUseCase.RegistryUseCase,
	logger *slog.Logger,
) *CapabilityHandler {
	return &CapabilityHandler{
		registryUseCase: registryUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves capability definitions, optionally filtered by category.
// GET /v1/capabilities?category=fleet - Requires role.manage at view level.
// Returns 200 OK with the capability list.
func (h *CapabilityHandler) ListHandler(c *gin.Context) {
	var capabilities []*authzDomain.Capability
	var err error

	category := c.Query("category")
	if category != "" {
		capabilities, err = h.registryUseCase.ListByCategory(
			c.Request.Context(),
			authzDomain.FeatureCategory(category),
		)
	} else {
		capabilities, err = h.registryUseCase.List(c.Request.Context())
	}

	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapCapabilitiesToListResponse(capabilities)
	c.JSON(http.StatusOK, response)
}

// GetHandler retrieves a capability definition by key.
// GET /v1/capabilities/:key - Requires role.manage at view level.
// Returns 200 OK with the capability definition.
func (h *CapabilityHandler) GetHandler(c *gin.Context) {
	key := c.Param("key")

	capability, err := h.registryUseCase.Get(c.Request.Context(), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapCapabilityToResponse(capability)
	c.JSON(http.StatusOK, response)
}
