// Package http provides HTTP middleware and handlers for organizations,
// users, and memberships.
package http

import (
	"context"

	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// organizationKey is a context key type for storing the resolved organization.
type organizationKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *orgDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (user, true) if present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*orgDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*orgDomain.User)
	return user, ok
}

// WithOrganization stores the resolved organization in the context.
func WithOrganization(ctx context.Context, organization *orgDomain.Organization) context.Context {
	return context.WithValue(ctx, organizationKey{}, organization)
}

// GetOrganization retrieves the resolved organization from the context.
// Returns (organization, true) if present, or (nil, false) if not set.
func GetOrganization(ctx context.Context) (*orgDomain.Organization, bool) {
	organization, ok := ctx.Value(organizationKey{}).(*orgDomain.Organization)
	return organization, ok
}
