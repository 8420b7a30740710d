package usecase

import (
	"context"
	"time"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/metrics"
)

// checkUseCaseWithMetrics decorates CheckUseCase with metrics instrumentation.
// The capability check runs on every protected request, so it is the one
// authorization operation worth a latency histogram.
type checkUseCaseWithMetrics struct {
	next    CheckUseCase
	metrics metrics.BusinessMetrics
}

// NewCheckUseCaseWithMetrics wraps a CheckUseCase with metrics recording.
func NewCheckUseCaseWithMetrics(useCase CheckUseCase, m metrics.BusinessMetrics) CheckUseCase {
	return &checkUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Check records metrics for capability check decisions. Denials are recorded
// as "denied" rather than "error" so dashboards can tell policy outcomes from
// infrastructure failures.
func (c *checkUseCaseWithMetrics) Check(
	ctx context.Context,
	caller authzDomain.Caller,
	capabilityKey string,
	minLevel authzDomain.AccessLevel,
) (*authzDomain.CheckResult, error) {
	start := time.Now()
	result, err := c.next.Check(ctx, caller, capabilityKey, minLevel)

	status := "allowed"
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrForbidden):
		status = "denied"
	default:
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "authz", "capability_check", status)
	c.metrics.RecordDuration(ctx, "authz", "capability_check", time.Since(start), status)

	return result, err
}
