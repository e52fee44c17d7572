// Package token issues and verifies the signed access tokens that attest to a
// logged-in user's identity, carried in a cookie or an Authorization header.
package token

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/musec/clowder/pkg/model"
)

const userIDClaim = "userId"

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(privateKey *rsa.PrivateKey, accessTokenExpirationSeconds int) *tokenService {
	return &tokenService{
		privateKey:                   privateKey,
		accessTokenExpirationSeconds: accessTokenExpirationSeconds,
	}
}

type tokenService struct {
	privateKey                   *rsa.PrivateKey
	accessTokenExpirationSeconds int
}

// GenerateAccessToken signs a token attesting to the user's identity. Only the
// identity goes into the claims; roles are loaded fresh on every request so
// the token cannot carry a stale grant.
func (t tokenService) GenerateAccessToken(user *model.User) (string, error) {
	now := time.Now()

	token := jwt.New()

	if err := token.Set(jwt.IssuedAtKey, now.Unix()); err != nil {
		return "", err
	}

	expiration := now.Add(time.Duration(t.accessTokenExpirationSeconds) * time.Second)
	if err := token.Set(jwt.ExpirationKey, expiration.Unix()); err != nil {
		return "", err
	}

	if err := token.Set(jwt.SubjectKey, user.Username); err != nil {
		return "", err
	}

	if err := token.Set(userIDClaim, user.ID); err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, t.privateKey))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

// ParseRequest verifies the access token on a request, from the accessToken
// cookie or the Authorization header, and returns the user ID it attests to.
func (t tokenService) ParseRequest(request *http.Request) (uint, error) {
	token, err := jwt.ParseRequest(
		request,
		jwt.WithKey(jwa.RS256, t.privateKey.Public()),
		jwt.WithHeaderKey("Authorization"),
		jwt.WithCookieKey("accessToken"),
	)
	if err != nil {
		return 0, err
	}

	userID, ok := token.Get(userIDClaim)
	if !ok {
		return 0, fmt.Errorf("%s not found in claims", userIDClaim)
	}

	id, ok := userID.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected %s claim type %T", userIDClaim, userID)
	}

	return uint(id), nil
}
