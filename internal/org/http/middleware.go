package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	authzHTTP "github.com/allisson/fleet/internal/authz/http"
	apperrors "github.com/allisson/fleet/internal/errors"
	"github.com/allisson/fleet/internal/httputil"
	orgUseCase "github.com/allisson/fleet/internal/org/usecase"
)

// OrganizationHeader carries the slug of the organization the caller is
// acting in. Every authenticated request must name its organization; the
// membership check happens later, in the capability check.
const OrganizationHeader = "X-Organization"

// AuthenticationMiddleware authenticates requests via Bearer token in the
// Authorization header and resolves the acting organization from the
// X-Organization header.
//
// The middleware:
//  1. Extracts the Bearer token from the Authorization header (case-insensitive)
//  2. Resolves the token to an active user via userUseCase.Authenticate
//  3. Resolves the X-Organization slug to an organization
//  4. Stores the user, organization, and the caller identity in the request
//     context for downstream capability checks
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid token → 401 Unauthorized
//   - Inactive user → 403 Forbidden
//   - Missing or unknown X-Organization header → 422 / 404
func AuthenticationMiddleware(
	userUseCase orgUseCase.UserUseCase,
	organizationUseCase orgUseCase.OrganizationUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := userUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		slug := strings.TrimSpace(c.GetHeader(OrganizationHeader))
		if slug == "" {
			logger.Debug("authentication failed: missing organization header",
				slog.String("user_id", user.ID.String()))
			httputil.HandleErrorGin(
				c,
				apperrors.Wrap(apperrors.ErrInvalidInput, "missing X-Organization header"),
				logger,
			)
			c.Abort()
			return
		}

		organization, err := organizationUseCase.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			logger.Debug("authentication failed: unknown organization",
				slog.String("slug", slug))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		ctx = WithOrganization(ctx, organization)
		ctx = authzHTTP.WithCaller(ctx, authzDomain.Caller{
			UserID:         user.ID,
			OrganizationID: organization.ID,
		})
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", user.ID.String()),
			slog.String("organization_id", organization.ID.String()))

		c.Next()
	}
}
