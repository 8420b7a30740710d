// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
)

// CapabilityResponse represents a capability definition in API responses.
type CapabilityResponse struct {
	Key              string   `json:"key"`
	Category         string   `json:"category"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	AccessLevels     []string `json:"access_levels"`
	IsSystemCritical bool     `json:"is_system_critical"`
}

// ListCapabilitiesResponse represents a list of capabilities in API responses.
type ListCapabilitiesResponse struct {
	Data []CapabilityResponse `json:"data"`
}

// MapCapabilityToResponse converts a domain capability to an API response.
func MapCapabilityToResponse(capability *authzDomain.Capability) CapabilityResponse {
	levels := make([]string, 0, len(capability.AccessLevels))
	for _, level := range capability.AccessLevels {
		levels = append(levels, string(level))
	}

	return CapabilityResponse{
		Key:              capability.Key,
		Category:         string(capability.Category),
		Name:             capability.Name,
		Description:      capability.Description,
		AccessLevels:     levels,
		IsSystemCritical: capability.IsSystemCritical,
	}
}

// MapCapabilitiesToListResponse converts a slice of domain capabilities to a list response.
func MapCapabilitiesToListResponse(capabilities []*authzDomain.Capability) ListCapabilitiesResponse {
	data := make([]CapabilityResponse, 0, len(capabilities))
	for _, capability := range capabilities {
		data = append(data, MapCapabilityToResponse(capability))
	}

	return ListCapabilitiesResponse{
		Data: data,
	}
}

// TemplateResponse represents a predefined role template in API responses.
type TemplateResponse struct {
	RoleKey     string            `json:"role_key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Grants      map[string]string `json:"grants"`
}

// ListTemplatesResponse represents the template catalog in API responses.
type ListTemplatesResponse struct {
	Data []TemplateResponse `json:"data"`
}

// MapTemplateToResponse converts a domain template to an API response.
func MapTemplateToResponse(template *authzDomain.RoleTemplate) TemplateResponse {
	return TemplateResponse{
		RoleKey:     template.RoleKey,
		Name:        template.Name,
		Description: template.Description,
		Grants:      mapLevels(template.Grants),
	}
}

// MapTemplatesToListResponse converts domain templates to a list response.
func MapTemplatesToListResponse(templates []authzDomain.RoleTemplate) ListTemplatesResponse {
	data := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		data = append(data, MapTemplateToResponse(&templates[i]))
	}

	return ListTemplatesResponse{
		Data: data,
	}
}

// MergeTemplatesResponse represents the merged capability mapping in API responses.
type MergeTemplatesResponse struct {
	TemplateKeys []string          `json:"template_keys"`
	Strategy     string            `json:"strategy"`
	Grants       map[string]string `json:"grants"`
}

// MapMergeToResponse converts a merged capability mapping to an API response.
func MapMergeToResponse(
	templateKeys []string,
	strategy authzDomain.MergeStrategy,
	grants map[string]authzDomain.AccessLevel,
) MergeTemplatesResponse {
	return MergeTemplatesResponse{
		TemplateKeys: templateKeys,
		Strategy:     string(strategy),
		Grants:       mapLevels(grants),
	}
}

// CompareTemplatesResponse represents a side-by-side template comparison in
// API responses. For every capability granted by at least one template the
// per-template level is listed; a missing entry means the template does not
// grant the capability.
type CompareTemplatesResponse struct {
	TemplateKeys []string                     `json:"template_keys"`
	Levels       map[string]map[string]string `json:"levels"`
}

// MapComparisonToResponse converts a template comparison to an API response.
func MapComparisonToResponse(comparison *authzUseCase.TemplateComparison) CompareTemplatesResponse {
	levels := make(map[string]map[string]string, len(comparison.Levels))
	for capabilityKey, perTemplate := range comparison.Levels {
		levels[capabilityKey] = mapLevels(perTemplate)
	}

	return CompareTemplatesResponse{
		TemplateKeys: comparison.TemplateKeys,
		Levels:       levels,
	}
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID                 string    `json:"id"`
	RoleKey            string    `json:"role_key"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	IsSystemRole       bool      `json:"is_system_role"`
	OrganizationID     *string   `json:"organization_id,omitempty"`
	SourceTemplateKeys []string  `json:"source_template_keys,omitempty"`
	IsSavedAsTemplate  bool      `json:"is_saved_as_template"`
	Customization      string    `json:"customization,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ListRolesResponse represents a list of roles in API responses.
type ListRolesResponse struct {
	Data []RoleResponse `json:"data"`
}

// MapRoleToResponse converts a domain role to an API response.
func MapRoleToResponse(role *authzDomain.Role) RoleResponse {
	response := RoleResponse{
		ID:                 role.ID.String(),
		RoleKey:            role.RoleKey,
		Name:               role.Name,
		Description:        role.Description,
		IsSystemRole:       role.IsSystemRole,
		SourceTemplateKeys: role.SourceTemplateKeys,
		IsSavedAsTemplate:  role.IsSavedAsTemplate,
		Customization:      role.Customization,
		CreatedAt:          role.CreatedAt,
		UpdatedAt:          role.UpdatedAt,
	}

	if role.OrganizationID != nil {
		organizationID := role.OrganizationID.String()
		response.OrganizationID = &organizationID
	}

	return response
}

// MapRolesToListResponse converts a slice of domain roles to a list response.
func MapRolesToListResponse(roles []*authzDomain.Role) ListRolesResponse {
	data := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		data = append(data, MapRoleToResponse(role))
	}

	return ListRolesResponse{
		Data: data,
	}
}

// GrantConstraintsResponse represents a grant's constraints in API responses.
type GrantConstraintsResponse struct {
	ZoneIDs []string `json:"zone_ids"`
}

// GrantResponse represents a role capability grant in API responses.
type GrantResponse struct {
	ID            string                    `json:"id"`
	RoleID        string                    `json:"role_id"`
	CapabilityKey string                    `json:"capability_key"`
	AccessLevel   string                    `json:"access_level"`
	Constraints   *GrantConstraintsResponse `json:"constraints,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// ListGrantsResponse represents a list of grants in API responses.
type ListGrantsResponse struct {
	Data []GrantResponse `json:"data"`
}

// MapGrantToResponse converts a domain grant to an API response.
func MapGrantToResponse(grant *authzDomain.RoleCapabilityGrant) GrantResponse {
	response := GrantResponse{
		ID:            grant.ID.String(),
		RoleID:        grant.RoleID.String(),
		CapabilityKey: grant.CapabilityKey,
		AccessLevel:   string(grant.AccessLevel),
		CreatedAt:     grant.CreatedAt,
	}

	if !grant.Constraints.IsZero() {
		zoneIDs := make([]string, 0, len(grant.Constraints.ZoneIDs))
		for _, zoneID := range grant.Constraints.ZoneIDs {
			zoneIDs = append(zoneIDs, zoneID.String())
		}
		response.Constraints = &GrantConstraintsResponse{ZoneIDs: zoneIDs}
	}

	return response
}

// MapGrantsToListResponse converts a slice of domain grants to a list response.
func MapGrantsToListResponse(grants []*authzDomain.RoleCapabilityGrant) ListGrantsResponse {
	data := make([]GrantResponse, 0, len(grants))
	for _, grant := range grants {
		data = append(data, MapGrantToResponse(grant))
	}

	return ListGrantsResponse{
		Data: data,
	}
}

// CheckResponse represents an allowed capability check in API responses.
type CheckResponse struct {
	Allowed       bool                      `json:"allowed"`
	RoleID        string                    `json:"role_id"`
	CapabilityKey string                    `json:"capability_key"`
	AccessLevel   string                    `json:"access_level"`
	Constraints   *GrantConstraintsResponse `json:"constraints,omitempty"`
}

// MapCheckResultToResponse converts a check result to an API response.
func MapCheckResultToResponse(result *authzDomain.CheckResult) CheckResponse {
	response := CheckResponse{
		Allowed:       true,
		RoleID:        result.RoleID.String(),
		CapabilityKey: result.CapabilityKey,
		AccessLevel:   string(result.AccessLevel),
	}

	if !result.Constraints.IsZero() {
		zoneIDs := make([]string, 0, len(result.Constraints.ZoneIDs))
		for _, zoneID := range result.Constraints.ZoneIDs {
			zoneIDs = append(zoneIDs, zoneID.String())
		}
		response.Constraints = &GrantConstraintsResponse{ZoneIDs: zoneIDs}
	}

	return response
}

// mapLevels converts an access level mapping to its string form.
func mapLevels(levels map[string]authzDomain.AccessLevel) map[string]string {
	out := make(map[string]string, len(levels))
	for key, level := range levels {
		out[key] = string(level)
	}
	return out
}
