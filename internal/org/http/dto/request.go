// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fleet/internal/validation"
)

// CreateOrganizationRequest contains the parameters for creating an organization.
type CreateOrganizationRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Validate checks if the create organization request is valid.
func (r *CreateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Slug,
			validation.Required,
			validation.Length(1, 100),
			customValidation.SlugFormat,
		),
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
	)
}

// RegisterUserRequest contains the parameters for registering a user.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the register user request is valid.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
			customValidation.NotBlank,
		),
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(5, 255),
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
			customValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
}

// AssignRoleRequest contains the parameters for assigning a role to a user
// inside the caller's organization.
type AssignRoleRequest struct {
	UserID  string `json:"user_id"`
	RoleKey string `json:"role_key"`
}

// Validate checks if the assign role request is valid.
func (r *AssignRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.RoleKey,
			validation.Required,
			customValidation.KeyFormat,
		),
	)
}
