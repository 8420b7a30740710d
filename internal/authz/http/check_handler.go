package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/authz/http/dto"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// CheckHandler handles explicit capability check requests. UIs use this to
// decide which controls to show before attempting the guarded operation.
type CheckHandler struct {
	checkUseCase authzUseCase.CheckUseCase
	logger       *slog.Logger
}

// NewCheckHandler creates a new check handler with required dependencies.
func NewCheckHandler(checkUseCase authzUseCase.CheckUseCase, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{
		checkUseCase: checkUseCase,
		logger:       logger,
	}
}

// CheckHandler tests the caller's grant for a capability against a minimum level.
// POST /v1/authz/check - Requires authentication only.
// Returns 200 OK with allowed=true and the granted level, or 200 OK with
// allowed=false on denial. Denial is a valid answer here, not an error.
func (h *CheckHandler) CheckHandler(c *gin.Context) {
	caller, ok := GetCaller(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CheckRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.checkUseCase.Check(
		c.Request.Context(),
		caller,
		req.CapabilityKey,
		authzDomain.AccessLevel(req.MinLevel),
	)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusOK, dto.CheckResponse{
				Allowed:       false,
				CapabilityKey: req.CapabilityKey,
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapCheckResultToResponse(result)
	c.JSON(http.StatusOK, response)
}
