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

// MembershipHandler handles HTTP requests for membership and role assignment.
// All operations act inside the caller's organization.
type MembershipHandler struct {
	membershipUseCase orgUseCase.MembershipUseCase
	logger            *slog.Logger
}

// NewMembershipHandler creates a new membership handler with required dependencies.
func NewMembershipHandler(
	membershipUseCase orgUseCase.MembershipUseCase,
	logger *slog.Logger,
) *MembershipHandler {
	return &MembershipHandler{
		membershipUseCase: membershipUseCase,
		logger:            logger,
	}
}

// AssignRoleHandler grants a user a role inside the caller's organization.
// PUT /v1/memberships - Requires role.assign at full level.
// Returns 200 OK with the membership. An existing membership moves to the
// new role.
func (h *MembershipHandler) AssignRoleHandler(c *gin.Context) {
	organization, ok := GetOrganization(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.AssignRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger,
		)
		return
	}

	input := &orgUseCase.AssignRoleInput{
		OrganizationID: organization.ID,
		UserID:         userID,
		RoleKey:        req.RoleKey,
	}

	membership, err := h.membershipUseCase.AssignRole(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapMembershipToResponse(membership)
	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves the caller organization's memberships.
// GET /v1/memberships?offset=0&limit=50 - Requires user.manage at view level.
// Returns 200 OK with the paginated membership list.
func (h *MembershipHandler) ListHandler(c *gin.Context) {
	organization, ok := GetOrganization(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	memberships, err := h.membershipUseCase.List(c.Request.Context(), organization.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapMembershipsToListResponse(memberships)
	c.JSON(http.StatusOK, response)
}

// RemoveHandler deletes a user's membership in the caller's organization.
// DELETE /v1/memberships/:user_id - Requires role.assign at full level.
// Returns 204 No Content.
func (h *MembershipHandler) RemoveHandler(c *gin.Context) {
	organization, ok := GetOrganization(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid user id"),
			h.logger,
		)
		return
	}

	if err := h.membershipUseCase.Remove(c.Request.Context(), organization.ID, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
