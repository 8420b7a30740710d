package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzUseCase "github.com/allisson/fleet/internal/authz/usecase"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
)

// RequireCapability gates a route behind a capability check at the minimum
// access level.
//
// MUST be used after the authentication middleware, which stores the caller
// in the request context. On an allowed check the result (including any grant
// constraints) is stored in the context for the handler via GetCheckResult.
//
// Error handling:
//   - No caller in context → 401 Unauthorized (authentication middleware not run)
//   - No active membership or insufficient level → 403 Forbidden
//   - Other errors → mapped by httputil.HandleErrorGin
func RequireCapability(
	checkUseCase authzUseCase.CheckUseCase,
	capabilityKey string,
	minLevel authzDomain.AccessLevel,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c.Request.Context())
		if !ok {
			logger.Debug("capability check failed: no authenticated caller in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		result, err := checkUseCase.Check(c.Request.Context(), caller, capabilityKey, minLevel)
		if err != nil {
			logger.Debug("capability check denied",
				slog.String("user_id", caller.UserID.String()),
				slog.String("organization_id", caller.OrganizationID.String()),
				slog.String("capability", capabilityKey),
				slog.String("min_level", string(minLevel)),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		logger.Debug("capability check allowed",
			slog.String("user_id", caller.UserID.String()),
			slog.String("capability", capabilityKey),
			slog.String("granted_level", string(result.AccessLevel)))

		ctx := WithCheckResult(c.Request.Context(), result)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
