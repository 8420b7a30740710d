package domain

import apperrors "github.com/allisson/fleet/internal/errors"

// Authorization domain errors. All wrap the shared sentinel taxonomy so
// handlers can map them with apperrors.Is.
var (
	// ErrCapabilityNotFound indicates an unknown capability key.
	ErrCapabilityNotFound = apperrors.Wrap(apperrors.ErrNotFound, "capability not found")

	// ErrTemplateNotFound indicates an unknown role template key.
	ErrTemplateNotFound = apperrors.Wrap(apperrors.ErrNotFound, "role template not found")

	// ErrRoleNotFound indicates an unknown role.
	ErrRoleNotFound = apperrors.Wrap(apperrors.ErrNotFound, "role not found")

	// ErrGrantNotFound indicates the role has no grant for the capability.
	ErrGrantNotFound = apperrors.Wrap(apperrors.ErrNotFound, "role capability grant not found")

	// ErrRoleAlreadyExists indicates a role key collision inside the organization.
	ErrRoleAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "role already exists")

	// ErrRoleInUse indicates the role is still held by at least one member.
	ErrRoleInUse = apperrors.Wrap(apperrors.ErrConflict, "role is assigned to members")

	// ErrSystemRoleImmutable indicates an attempt to modify or delete a system role.
	ErrSystemRoleImmutable = apperrors.Wrap(apperrors.ErrConflict, "system roles cannot be modified")

	// ErrUnsupportedAccessLevel indicates a grant level outside the
	// capability's declared access level set.
	ErrUnsupportedAccessLevel = apperrors.Wrap(
		apperrors.ErrInvalidInput,
		"access level not supported by capability",
	)

	// ErrNoActiveMembership indicates the caller has no role in the organization.
	ErrNoActiveMembership = apperrors.Wrap(apperrors.ErrForbidden, "no active membership in organization")

	// ErrInsufficientAccessLevel indicates the caller's grant ranks below the
	// required level.
	ErrInsufficientAccessLevel = apperrors.Wrap(apperrors.ErrForbidden, "insufficient access level")
)
