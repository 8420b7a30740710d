package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
)

// mockCheckUseCase is a mock implementation of CheckUseCase for testing.
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

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCaller() authzDomain.Caller {
	return authzDomain.Caller{
		UserID:         uuid.Must(uuid.NewV7()),
		OrganizationID: uuid.Must(uuid.NewV7()),
	}
}

// callerInjector simulates the authentication middleware for tests.
func callerInjector(caller authzDomain.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithCaller(c.Request.Context(), caller)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func TestCallerContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetCaller(ctx)
	assert.False(t, ok)

	caller := testCaller()
	ctx = WithCaller(ctx, caller)

	stored, ok := GetCaller(ctx)
	assert.True(t, ok)
	assert.Equal(t, caller, stored)
}

func TestCheckResultContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetCheckResult(ctx)
	assert.False(t, ok)

	result := &authzDomain.CheckResult{
		RoleID:        uuid.Must(uuid.NewV7()),
		CapabilityKey: "vehicle.manage",
		AccessLevel:   authzDomain.AccessLevelFull,
	}
	ctx = WithCheckResult(ctx, result)

	stored, ok := GetCheckResult(ctx)
	assert.True(t, ok)
	assert.Equal(t, result, stored)
}

func TestRequireCapability_Allowed(t *testing.T) {
	checkUseCase := &mockCheckUseCase{}
	logger := createTestLogger()
	caller := testCaller()

	result := &authzDomain.CheckResult{
		RoleID:        uuid.Must(uuid.NewV7()),
		CapabilityKey: "vehicle.manage",
		AccessLevel:   authzDomain.AccessLevelFull,
		Constraints:   &authzDomain.GrantConstraints{ZoneIDs: []uuid.UUID{uuid.Must(uuid.NewV7())}},
	}
	checkUseCase.On("Check", mock.Anything, caller, "vehicle.manage", authzDomain.AccessLevelLimited).
		Return(result, nil).Once()

	router := gin.New()
	router.Use(callerInjector(caller))
	router.Use(RequireCapability(checkUseCase, "vehicle.manage", authzDomain.AccessLevelLimited, logger))
	router.GET("/vehicles", func(c *gin.Context) {
		// The handler can read the grant's constraints from the context
		stored, ok := GetCheckResult(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, result, stored)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	checkUseCase.AssertExpectations(t)
}

func TestRequireCapability_NoCaller(t *testing.T) {
	checkUseCase := &mockCheckUseCase{}
	logger := createTestLogger()

	router := gin.New()
	router.Use(RequireCapability(checkUseCase, "vehicle.manage", authzDomain.AccessLevelView, logger))
	router.GET("/vehicles", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	checkUseCase.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireCapability_Denied(t *testing.T) {
	checkUseCase := &mockCheckUseCase{}
	logger := createTestLogger()
	caller := testCaller()

	checkUseCase.On("Check", mock.Anything, caller, "vehicle.manage", authzDomain.AccessLevelFull).
		Return(nil, authzDomain.ErrInsufficientAccessLevel).Once()

	router := gin.New()
	router.Use(callerInjector(caller))
	router.Use(RequireCapability(checkUseCase, "vehicle.manage", authzDomain.AccessLevelFull, logger))
	router.DELETE("/vehicles/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/vehicles/123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapability_NoActiveMembership(t *testing.T) {
	checkUseCase := &mockCheckUseCase{}
	logger := createTestLogger()
	caller := testCaller()

	checkUseCase.On("Check", mock.Anything, caller, "vehicle.manage", authzDomain.AccessLevelView).
		Return(nil, authzDomain.ErrNoActiveMembership).Once()

	router := gin.New()
	router.Use(callerInjector(caller))
	router.Use(RequireCapability(checkUseCase, "vehicle.manage", authzDomain.AccessLevelView, logger))
	router.GET("/vehicles", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapability_InternalError(t *testing.T) {
	checkUseCase := &mockCheckUseCase{}
	logger := createTestLogger()
	caller := testCaller()

	checkUseCase.On("Check", mock.Anything, caller, "vehicle.manage", authzDomain.AccessLevelView).
		Return(nil, assert.AnError).Once()

	router := gin.New()
	router.Use(callerInjector(caller))
	router.Use(RequireCapability(checkUseCase, "vehicle.manage", authzDomain.AccessLevelView, logger))
	router.GET("/vehicles", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
