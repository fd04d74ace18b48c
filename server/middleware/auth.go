package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/secureapi/auth/authctx"
	"github.com/skillsenselab/secureapi/auth/token"
	apperrors "github.com/skillsenselab/secureapi/errors"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/observability"
	"github.com/skillsenselab/secureapi/user"
)

const bearerPrefix = "Bearer "

// Authenticate verifies an optional bearer token and attaches the account it
// names to the request context.
//
// The gate itself never rejects a request over its token: a missing header,
// a wrong scheme, an expired or tampered token, or a subject that no longer
// exists all leave the request anonymous and let downstream authorization
// decide. The one exception is a store outage during the account re-fetch,
// which aborts with 503 so infrastructure failures are never mistaken for
// bad credentials.
//
// The account is re-fetched on every request, so a deleted user or a changed
// role takes effect immediately even while old tokens are still circulating.
func Authenticate(tokens *token.Service, store user.Store, log *logger.Logger, metrics *observability.Metrics) gin.HandlerFunc {
	log = log.WithComponent("authgate")
	return func(c *gin.Context) {
		raw, ok := extractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			reason := failureReason(err)
			log.Debug("Token rejected", logger.Fields("reason", reason))
			if metrics != nil {
				metrics.RecordAuthFailure(c.Request.Context(), reason)
			}
			c.Next()
			return
		}

		u, err := store.FindByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
				// Valid token for an account that no longer exists.
				log.Debug("Token subject unknown", logger.Fields(
					logger.FieldUsername, claims.Subject,
				))
				if metrics != nil {
					metrics.RecordAuthFailure(c.Request.Context(), "unknown_subject")
				}
				c.Next()
				return
			}

			log.Error("Account re-fetch failed", logger.ErrorFields("authenticate", err))
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.ServiceUnavailable("database").WithCause(err)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		principal := &authctx.Principal{
			Username:  u.Username,
			Role:      u.Role,
			Authority: u.Authority(),
		}
		c.Request = c.Request.WithContext(authctx.WithPrincipal(c.Request.Context(), principal))
		if metrics != nil {
			metrics.RecordAuthSuccess(c.Request.Context())
		}
		c.Next()
	}
}

// RequireAuthenticated aborts with 401 when the request carries no verified
// identity. Mount after Authenticate.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authctx.IsAuthenticated(c.Request.Context()) {
			appErr := apperrors.Unauthorized("")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

// Checker is the permission interface RequirePermission consults.
type Checker interface {
	HasPermission(authority string, permission string) bool
}

// RequirePermission aborts with 401 for anonymous requests and 403 when the
// authenticated identity's authority lacks the permission.
func RequirePermission(checker Checker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := authctx.FromContext(c.Request.Context())
		if !ok {
			appErr := apperrors.Unauthorized("")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		if !checker.HasPermission(p.Authority, permission) {
			appErr := apperrors.Forbidden("")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

// extractBearer pulls the token out of an Authorization header. The scheme
// comparison is case-sensitive: only "Bearer " is accepted.
func extractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// failureReason maps parse errors onto coarse metric categories.
func failureReason(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return "expired"
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
