// Package http provides HTTP handlers for fleet resources. Routes are gated
// by capability checks; handlers evaluate the grant's zone constraints
// against the specific resource.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzHTTP "github.com/allisson/fleet/internal/authz/http"
	apperrors "github.com/allisson/fleet/internal/errors"
)

// requestScope extracts the caller's organization and the zone constraints
// from the capability check performed by the route middleware.
func requestScope(c *gin.Context) (uuid.UUID, *authzDomain.GrantConstraints, error) {
	caller, ok := authzHTTP.GetCaller(c.Request.Context())
	if !ok {
		return uuid.Nil, nil, apperrors.ErrUnauthorized
	}

	var constraints *authzDomain.GrantConstraints
	if result, ok := authzHTTP.GetCheckResult(c.Request.Context()); ok {
		constraints = result.Constraints
	}

	return caller.OrganizationID, constraints, nil
}

// parseOptionalZoneID parses a zone ID string; empty means unassigned.
func parseOptionalZoneID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	zoneID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid zone id")
	}
	return &zoneID, nil
}
