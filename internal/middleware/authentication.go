package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/pkg/model"
)

func NewAuthentication(tokenService tokenService, userService userService, fakeGithubUsername string) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		tokenService:       tokenService,
		userService:        userService,
		fakeGithubUsername: fakeGithubUsername,
	}
}

type tokenService interface {
	ParseRequest(request *http.Request) (uint, error)
}

type userService interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByGithubUsername(ctx context.Context, githubUsername string) (*model.User, error)
}

type AuthenticationMiddleware struct {
	tokenService       tokenService
	userService        userService
	fakeGithubUsername string
}

// TokenAuthentication resolves the request's identity assertion to a user and
// attaches it to the Gin context and the request context (for log correlation).
//
// The primary assertion is a signed access token carried in a cookie or bearer
// header. If none resolves and a fake GitHub username is configured, that login
// is treated as verified. Identity resolution never creates users.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	user, err := m.authenticate(c)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
	if len(c.Errors.Errors()) > 0 {
		c.Abort()
		return
	}

	c.Set("user", user)
	ctx := model.NewContextWithUser(c.Request.Context(), user)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func (m AuthenticationMiddleware) authenticate(c *gin.Context) (*model.User, error) {
	ctx := c.Request.Context()

	id, err := m.tokenService.ParseRequest(c.Request)
	if err != nil {
		return m.fakeAuth(ctx)
	}

	// The token only attests to the identity; roles and emails are loaded
	// fresh so revocations take effect immediately.
	user, err := m.userService.FindByID(ctx, id)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("token names an unknown user")
		}
		return nil, err
	}

	return user, nil
}

func (m AuthenticationMiddleware) fakeAuth(ctx context.Context) (*model.User, error) {
	if m.fakeGithubUsername == "" {
		return nil, errdef.NewUnauthorized("authentication required")
	}

	user, err := m.userService.FindByGithubUsername(ctx, m.fakeGithubUsername)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("GitHub user %q not authorized", m.fakeGithubUsername)
		}
		return nil, err
	}

	return user, nil
}
