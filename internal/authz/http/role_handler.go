package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	"github.com/allisson/fleet/internal/authz/http/dto"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
	customValidation "github.com/allisson/fleet/internal/validation"
)

// RoleHandler handles HTTP requests for role and grant management.
// All operations are scoped to the caller's organization: custom roles of
// other organizations are invisible, system roles are read-only.
type RoleHandler struct {
	roleUseCase authzUseCase.RoleUseCase
	logger      *slog.Logger
}

// NewRoleHandler creates a new role handler with required dependencies.
func NewRoleHandler(roleUseCase authzUseCase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		roleUseCase: roleUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a custom role in the caller's organization.
// POST /v1/roles - Requires role.manage at full level.
// Returns 201 Created with the new role. When source templates are given the
// merged capability mapping seeds the role's grants.
func (h *RoleHandler) CreateHandler(c *gin.Context) {
	caller, ok := GetCaller(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authzUseCase.CreateRoleInput{
		OrganizationID:     caller.OrganizationID,
		RoleKey:            req.RoleKey,
		Name:               req.Name,
		Description:        req.Description,
		SourceTemplateKeys: req.SourceTemplateKeys,
		MergeStrategy:      authzDomain.MergeStrategy(req.MergeStrategy),
		IsSavedAsTemplate:  req.IsSavedAsTemplate,
		Customization:      req.Customization,
	}

	role, err := h.roleUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapRoleToResponse(role)
	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a role visible to the caller's organization.
// GET /v1/roles/:id - Requires role.manage at view level.
// Returns 200 OK with the role.
func (h *RoleHandler) GetHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapRoleToResponse(role)
	c.JSON(http.StatusOK, response)
}

// ListHandler retrieves the system roles plus the caller's custom roles.
// GET /v1/roles - Requires role.manage at view level.
// Returns 200 OK with the role list.
func (h *RoleHandler) ListHandler(c *gin.Context) {
	caller, ok := GetCaller(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	roles, err := h.roleUseCase.List(c.Request.Context(), caller.OrganizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapRolesToListResponse(roles)
	c.JSON(http.StatusOK, response)
}

// UpdateHandler modifies a custom role's descriptive attributes.
// PUT /v1/roles/:id - Requires role.manage at full level.
// Returns 200 OK with the updated role. System roles are immutable.
func (h *RoleHandler) UpdateHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authzUseCase.UpdateRoleInput{
		Name:              req.Name,
		Description:       req.Description,
		IsSavedAsTemplate: req.IsSavedAsTemplate,
		Customization:     req.Customization,
	}

	updated, err := h.roleUseCase.Update(c.Request.Context(), role.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapRoleToResponse(updated)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a custom role that no member holds.
// DELETE /v1/roles/:id - Requires role.manage at full level.
// Returns 204 No Content.
func (h *RoleHandler) DeleteHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.roleUseCase.Delete(c.Request.Context(), role.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListGrantsHandler retrieves a role's capability grants.
// GET /v1/roles/:id/grants - Requires role.manage at view level.
// Returns 200 OK with the grant list.
func (h *RoleHandler) ListGrantsHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	grants, err := h.roleUseCase.ListGrants(c.Request.Context(), role.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapGrantsToListResponse(grants)
	c.JSON(http.StatusOK, response)
}

// SetGrantHandler adds or updates one of a custom role's grants.
// PUT /v1/roles/:id/grants - Requires role.manage at full level.
// Returns 204 No Content. The access level must be one of the capability's
// declared levels.
func (h *RoleHandler) SetGrantHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.SetGrantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	constraints, err := parseConstraints(req.Constraints)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &authzUseCase.SetGrantInput{
		CapabilityKey: req.CapabilityKey,
		AccessLevel:   authzDomain.AccessLevel(req.AccessLevel),
		Constraints:   constraints,
	}

	if err := h.roleUseCase.SetGrant(c.Request.Context(), role.ID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RemoveGrantHandler removes one of a custom role's grants.
// DELETE /v1/roles/:id/grants/:capability_key - Requires role.manage at full level.
// Returns 204 No Content.
func (h *RoleHandler) RemoveGrantHandler(c *gin.Context) {
	role, err := h.visibleRole(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	capabilityKey := c.Param("capability_key")

	if err := h.roleUseCase.RemoveGrant(c.Request.Context(), role.ID, capabilityKey); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// visibleRole resolves the :id path parameter to a role visible to the
// caller's organization. Custom roles of other organizations resolve to
// not found.
func (h *RoleHandler) visibleRole(c *gin.Context) (*authzDomain.Role, error) {
	caller, ok := GetCaller(c.Request.Context())
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid role id")
	}

	role, err := h.roleUseCase.Get(c.Request.Context(), roleID)
	if err != nil {
		return nil, err
	}

	if role.OrganizationID != nil && *role.OrganizationID != caller.OrganizationID {
		return nil, authzDomain.ErrRoleNotFound
	}

	return role, nil
}

// parseConstraints converts the request constraints to domain form.
func parseConstraints(req *dto.GrantConstraintsRequest) (*authzDomain.GrantConstraints, error) {
	if req == nil || len(req.ZoneIDs) == 0 {
		return nil, nil
	}

	zoneIDs := make([]uuid.UUID, 0, len(req.ZoneIDs))
	for _, raw := range req.ZoneIDs {
		zoneID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid zone id %q", raw)
		}
		zoneIDs = append(zoneIDs, zoneID)
	}

	return &authzDomain.GrantConstraints{ZoneIDs: zoneIDs}, nil
}
