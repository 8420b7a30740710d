package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockCheckUseCase is a mock implementation of CheckUseCase.
type mockCheckUseCase struct {
	mock.Mock
}

func (m *mockCheckUseCase) Check(
	ctx context.Context,
	caller authzDomain.Caller,
	capabilityKey string,
	minLevel authzDomain.AccessLevel,
) (*authzDomain.CheckResult, error) {
	args := m.Called(ctx, caller, capabilityKey, minLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.CheckResult), args.Error(1)
}

func TestCheckUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	caller := authzDomain.Caller{
		UserID:         uuid.Must(uuid.NewV7()),
		OrganizationID: uuid.Must(uuid.NewV7()),
	}

	t.Run("Allowed check records allowed status", func(t *testing.T) {
		mockNext := &mockCheckUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewCheckUseCaseWithMetrics(mockNext, mockMetrics)

		result := &authzDomain.CheckResult{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   authzDomain.AccessLevelFull,
		}
		mockNext.On("Check", ctx, caller, "vehicle.manage", authzDomain.AccessLevelView).
			Return(result, nil).
			Once()
		mockMetrics.On("RecordOperation", ctx, "authz", "capability_check", "allowed").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "authz", "capability_check", mock.AnythingOfType("time.Duration"), "allowed").
			Return().
			Once()

		res, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.NoError(t, err)
		assert.Equal(t, result, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Denied check records denied status", func(t *testing.T) {
		mockNext := &mockCheckUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewCheckUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Check", ctx, caller, "vehicle.manage", authzDomain.AccessLevelFull).
			Return(nil, authzDomain.ErrInsufficientAccessLevel).
			Once()
		mockMetrics.On("RecordOperation", ctx, "authz", "capability_check", "denied").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "authz", "capability_check", mock.AnythingOfType("time.Duration"), "denied").
			Return().
			Once()

		res, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelFull)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, authzDomain.ErrInsufficientAccessLevel)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Missing membership records denied status", func(t *testing.T) {
		mockNext := &mockCheckUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewCheckUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Check", ctx, caller, "vehicle.manage", authzDomain.AccessLevelView).
			Return(nil, authzDomain.ErrNoActiveMembership).
			Once()
		mockMetrics.On("RecordOperation", ctx, "authz", "capability_check", "denied").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "authz", "capability_check", mock.AnythingOfType("time.Duration"), "denied").
			Return().
			Once()

		res, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, authzDomain.ErrNoActiveMembership)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Infrastructure failure records error status", func(t *testing.T) {
		mockNext := &mockCheckUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		useCase := NewCheckUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Check", ctx, caller, "vehicle.manage", authzDomain.AccessLevelView).
			Return(nil, assert.AnError).
			Once()
		mockMetrics.On("RecordOperation", ctx, "authz", "capability_check", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "authz", "capability_check", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := useCase.Check(ctx, caller, "vehicle.manage", authzDomain.AccessLevelView)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, assert.AnError)
		mockMetrics.AssertExpectations(t)
	})
}
