// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListOrganizationsResponse represents a paginated list of organizations.
type ListOrganizationsResponse struct {
	Data []OrganizationResponse `json:"data"`
}

// MapOrganizationToResponse converts a domain organization to an API response.
func MapOrganizationToResponse(organization *orgDomain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        organization.ID.String(),
		Slug:      organization.Slug,
		Name:      organization.Name,
		CreatedAt: organization.CreatedAt,
		UpdatedAt: organization.UpdatedAt,
	}
}

// MapOrganizationsToListResponse converts domain organizations to a list response.
func MapOrganizationsToListResponse(organizations []*orgDomain.Organization) ListOrganizationsResponse {
	data := make([]OrganizationResponse, 0, len(organizations))
	for _, organization := range organizations {
		data = append(data, MapOrganizationToResponse(organization))
	}

	return ListOrganizationsResponse{
		Data: data,
	}
}

// UserResponse represents a user in API responses.
// Password and token hashes are never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterUserResponse represents a newly registered user in API responses.
// APIToken is the plain bearer token, shown once and never stored.
type RegisterUserResponse struct {
	User     UserResponse `json:"user"`
	APIToken string       `json:"api_token"`
}

// RotateTokenResponse represents a rotated API token in API responses.
type RotateTokenResponse struct {
	APIToken string `json:"api_token"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *orgDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUserToRegisterResponse converts a new user and its plain token to an API response.
func MapUserToRegisterResponse(user *orgDomain.User, apiToken string) RegisterUserResponse {
	return RegisterUserResponse{
		User:     MapUserToResponse(user),
		APIToken: apiToken,
	}
}

// MembershipResponse represents a membership in API responses.
type MembershipResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	RoleID         string    `json:"role_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListMembershipsResponse represents a paginated list of memberships.
type ListMembershipsResponse struct {
	Data []MembershipResponse `json:"data"`
}

// MapMembershipToResponse converts a domain membership to an API response.
func MapMembershipToResponse(membership *orgDomain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:             membership.ID.String(),
		OrganizationID: membership.OrganizationID.String(),
		UserID:         membership.UserID.String(),
		RoleID:         membership.RoleID.String(),
		IsActive:       membership.IsActive,
		CreatedAt:      membership.CreatedAt,
		UpdatedAt:      membership.UpdatedAt,
	}
}

// MapMembershipsToListResponse converts domain memberships to a list response.
func MapMembershipsToListResponse(memberships []*orgDomain.Membership) ListMembershipsResponse {
	data := make([]MembershipResponse, 0, len(memberships))
	for _, membership := range memberships {
		data = append(data, MapMembershipToResponse(membership))
	}

	return ListMembershipsResponse{
		Data: data,
	}
}
