package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/pkg/model"
)

func NewAuthorization(logger *slog.Logger) AuthorizationMiddleware {
	return AuthorizationMiddleware{
		logger: logger,
	}
}

type AuthorizationMiddleware struct {
	logger *slog.Logger
}

// RequireCapability gates a route on the authenticated user holding the given
// capability through at least one of their roles. The user's role set was
// loaded by the authentication middleware, so an unreadable role set has
// already failed the request; failure here means plain denial.
func (m AuthorizationMiddleware) RequireCapability(capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := handler.GetUserFromContext(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if !user.HasCapability(capability) {
			m.logger.ErrorContext(c.Request.Context(), "User tried to access restricted endpoint",
				"user", user.ID, "capability", capability)
			_ = c.Error(errdef.NewForbidden("user %q not permitted to %s", user.Username, capability))
			c.Abort()
			return
		}

		// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
		if len(c.Errors.Errors()) > 0 {
			c.Abort()
			return
		}

		c.Next()
	}
}
