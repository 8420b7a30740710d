// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fleet/internal/validation"
)

// GrantConstraintsRequest restricts a grant to a subset of the organization's zones.
type GrantConstraintsRequest struct {
	ZoneIDs []string `json:"zone_ids"`
}

// CreateRoleRequest contains the parameters for creating a custom role.
type CreateRoleRequest struct {
	RoleKey            string   `json:"role_key"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	SourceTemplateKeys []string `json:"source_template_keys"`
	MergeStrategy      string   `json:"merge_strategy"`
	IsSavedAsTemplate  bool     `json:"is_saved_as_template"`
	Customization      string   `json:"customization"`
}

// Validate checks if the create role request is valid.
func (r *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RoleKey,
			validation.Required,
			validation.Length(1, 100),
			customValidation.KeyFormat,
		),
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
		validation.Field(&r.MergeStrategy,
			validation.In("", "union", "intersection"),
		),
	)
}

// UpdateRoleRequest contains the parameters for updating a custom role.
type UpdateRoleRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsSavedAsTemplate bool   `json:"is_saved_as_template"`
	Customization     string `json:"customization"`
}

// Validate checks if the update role request is valid.
func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// SetGrantRequest contains the parameters for adding or changing a role's grant.
type SetGrantRequest struct {
	CapabilityKey string                   `json:"capability_key"`
	AccessLevel   string                   `json:"access_level"`
	Constraints   *GrantConstraintsRequest `json:"constraints"`
}

// Validate checks if the set grant request is valid.
func (r *SetGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CapabilityKey,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.AccessLevel,
			validation.Required,
			validation.In("none", "view", "limited", "full"),
		),
	)
}

// MergeTemplatesRequest contains the parameters for merging role templates.
type MergeTemplatesRequest struct {
	TemplateKeys []string `json:"template_keys"`
	Strategy     string   `json:"strategy"`
}

// Validate checks if the merge templates request is valid.
func (r *MergeTemplatesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TemplateKeys,
			validation.Required,
			validation.Length(1, 0),
		),
		validation.Field(&r.Strategy,
			validation.Required,
			validation.In("union", "intersection"),
		),
	)
}

// CompareTemplatesRequest contains the parameters for comparing role templates.
type CompareTemplatesRequest struct {
	TemplateKeys []string `json:"template_keys"`
}

// Validate checks if the compare templates request is valid.
func (r *CompareTemplatesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TemplateKeys,
			validation.Required,
			validation.Length(2, 0),
		),
	)
}

// CheckRequest contains the parameters for an explicit capability check.
type CheckRequest struct {
	CapabilityKey string `json:"capability_key"`
	MinLevel      string `json:"min_level"`
}

// Validate checks if the check request is valid.
func (r *CheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CapabilityKey,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.MinLevel,
			validation.Required,
			validation.In("none", "view", "limited", "full"),
		),
	)
}
