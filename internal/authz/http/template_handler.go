package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/authz/http/dto"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	"github.com/allisson/fleet/internal/httputil"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// TemplateHandler handles HTTP requests for the predefined role template
// catalog and the merge/compare engine over it.
type TemplateHandler struct {
	templateUseCase authzUseCase.TemplateUseCase
	logger          *slog.Logger
}

// NewTemplateHandler creates a new template handler with required dependencies.
func NewTemplateHandler(
	templateUseCase authzUseCase.TemplateUseCase,
	logger *slog.Logger,
) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves the predefined role template catalog.
// GET /v1/role-templates - Requires role.manage at view level.
// Returns 200 OK with the template list.
func (h *TemplateHandler) ListHandler(c *gin.Context) {
	templates := h.templateUseCase.List()

	response := dto.MapTemplatesToListResponse(templates)
	c.JSON(http.StatusOK, response)
}

// GetHandler retrieves a predefined role template by key.
// GET /v1/role-templates/:key - Requires role.manage at view level.
// Returns 200 OK with the template.
func (h *TemplateHandler) GetHandler(c *gin.Context) {
	key := c.Param("key")

	template, err := h.templateUseCase.Get(key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTemplateToResponse(template)
	c.JSON(http.StatusOK, response)
}

// MergeHandler combines multiple templates into a single capability mapping.
// POST /v1/role-templates/merge - Requires role.manage at view level.
// Returns 200 OK with the merged grants. The merge is a pure computation,
// nothing is persisted.
func (h *TemplateHandler) MergeHandler(c *gin.Context) {
	var req dto.MergeTemplatesRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	strategy := authzDomain.MergeStrategy(req.Strategy)
	grants, err := h.templateUseCase.Merge(req.TemplateKeys, strategy)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapMergeToResponse(req.TemplateKeys, strategy, grants)
	c.JSON(http.StatusOK, response)
}

// CompareHandler returns a side-by-side view of two or more templates.
// POST /v1/role-templates/compare - Requires role.manage at view level.
// Returns 200 OK with per-capability, per-template levels.
func (h *TemplateHandler) CompareHandler(c *gin.Context) {
	var req dto.CompareTemplatesRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	comparison, err := h.templateUseCase.Compare(req.TemplateKeys)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapComparisonToResponse(comparison)
	c.JSON(http.StatusOK, response)
}
