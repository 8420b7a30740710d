package domain

import (
	apperrors "github.com/allisson/fleet/internal/errors"
)

// Organization, user, and membership errors wrapping the application
// sentinels for consistent HTTP mapping.
var (
	// ErrOrganizationNotFound is returned when an organization does not exist.
	ErrOrganizationNotFound = apperrors.Wrap(apperrors.ErrNotFound, "organization not found")

	// ErrOrganizationAlreadyExists is returned when an organization slug is taken.
	ErrOrganizationAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "organization already exists")

	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = apperrors.Wrap(apperrors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists is returned when a user email is taken.
	ErrUserAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "user already exists")

	// ErrMembershipNotFound is returned when a user has no membership in the organization.
	ErrMembershipNotFound = apperrors.Wrap(apperrors.ErrNotFound, "membership not found")

	// ErrMembershipAlreadyExists is returned when the user already belongs to the organization.
	ErrMembershipAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "membership already exists")

	// ErrInvalidToken is returned when a bearer token does not match any active user.
	ErrInvalidToken = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")

	// ErrInactiveUser is returned when a deactivated user attempts to authenticate.
	ErrInactiveUser = apperrors.Wrap(apperrors.ErrForbidden, "user is inactive")
)
