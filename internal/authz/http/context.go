// Package http provides HTTP middleware and handlers for authorization operations.
package http

import (
	"context"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
)

// callerKey is a context key type for storing the authenticated caller.
type callerKey struct{}

// checkResultKey is a context key type for storing the capability check result.
type checkResultKey struct{}

// WithCaller stores the authenticated caller in the context.
// This is typically called by the authentication middleware after resolving
// the user and organization.
func WithCaller(ctx context.Context, caller authzDomain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller retrieves the authenticated caller from the context.
// Returns (caller, true) if present, or (zero, false) if no caller was set.
func GetCaller(ctx context.Context) (authzDomain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(authzDomain.Caller)
	return caller, ok
}

// WithCheckResult stores a capability check result in the context.
// This is typically called by RequireCapability after an allowed check, so
// handlers can evaluate the grant's constraints against the specific resource.
func WithCheckResult(ctx context.Context, result *authzDomain.CheckResult) context.Context {
	return context.WithValue(ctx, checkResultKey{}, result)
}

// GetCheckResult retrieves the capability check result from the context.
// Returns (result, true) if present, or (nil, false) if no result was set.
func GetCheckResult(ctx context.Context) (*authzDomain.CheckResult, bool) {
	result, ok := ctx.Value(checkResultKey{}).(*authzDomain.CheckResult)
	return result, ok
}
