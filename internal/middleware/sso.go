package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/pkg/model"
)

const accessTokenCookieName = "accessToken"

func NewSSO(userService ssoUserService, tokenService ssoTokenService, hostname string, sameSiteMode http.SameSite, accessTokenExpirationSeconds int) SSOMiddleware {
	return SSOMiddleware{
		userService:                  userService,
		tokenService:                 tokenService,
		hostname:                     hostname,
		sameSiteMode:                 sameSiteMode,
		accessTokenExpirationSeconds: accessTokenExpirationSeconds,
	}
}

type ssoUserService interface {
	FindByGithubUsername(ctx context.Context, githubUsername string) (*model.User, error)
}

type ssoTokenService interface {
	GenerateAccessToken(user *model.User) (string, error)
}

type SSOMiddleware struct {
	userService                  ssoUserService
	tokenService                 ssoTokenService
	hostname                     string
	sameSiteMode                 http.SameSite
	accessTokenExpirationSeconds int
}

// BeginAuthHandler initiates the GitHub OAuth flow.
func (m SSOMiddleware) BeginAuthHandler(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", "github")
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// SSOAuthentication handles the GitHub OAuth callback. The verified GitHub
// login must already be linked to a user; unknown logins are rejected rather
// than auto-provisioned.
func (m SSOMiddleware) SSOAuthentication(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Add("provider", "github")
	c.Request.URL.RawQuery = q.Encode()

	ssoUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	user, err := m.userService.FindByGithubUsername(c.Request.Context(), ssoUser.NickName)
	if err != nil {
		if errdef.IsNotFound(err) {
			err = errdef.NewUnauthorized("GitHub user %q not authorized", ssoUser.NickName)
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	accessToken, err := m.tokenService.GenerateAccessToken(user)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.SetSameSite(m.sameSiteMode)
	c.SetCookie(accessTokenCookieName, accessToken, m.accessTokenExpirationSeconds, "/", m.hostname, true, true)

	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// LogoutHandler logs the user out by clearing their access-token cookie.
func (m SSOMiddleware) LogoutHandler(c *gin.Context) {
	c.SetSameSite(m.sameSiteMode)
	c.SetCookie(accessTokenCookieName, "", -1, "/", m.hostname, true, true)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
