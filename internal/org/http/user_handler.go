package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
	"github.com/allisson/fleet/internal/org/http/dto"
	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase orgUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase orgUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new user and issues its API token.
// POST /v1/users - Requires user.manage at full level.
// Returns 201 Created with the user and the plain token. The token is shown
// once and never stored.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &orgUseCase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	user, apiToken, err := h.userUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapUserToRegisterResponse(user, apiToken)
	c.JSON(http.StatusCreated, response)
}

// GetMeHandler retrieves the authenticated user.
// GET /v1/users/me - Requires authentication only.
// Returns 200 OK with the user.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	response := dto.MapUserToResponse(user)
	c.JSON(http.StatusOK, response)
}

// RotateTokenHandler issues a new API token for the authenticated user.
// POST /v1/users/me/token - Requires authentication only.
// Returns 200 OK with the new plain token; the previous token stops working.
func (h *UserHandler) RotateTokenHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	apiToken, err := h.userUseCase.RotateToken(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RotateTokenResponse{APIToken: apiToken})
}

// DeactivateHandler marks a user inactive, blocking authentication.
// DELETE /v1/users/:id - Requires user.manage at full level.
// Returns 204 No Content.
func (h *UserHandler) DeactivateHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger,
		)
		return
	}

	if err := h.userUseCase.Deactivate(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
