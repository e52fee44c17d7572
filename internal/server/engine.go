package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/middleware"
	"github.com/musec/clowder/pkg/health"
	"github.com/musec/clowder/pkg/machine"
	"github.com/musec/clowder/pkg/reservation"
	"github.com/musec/clowder/pkg/role"
	"github.com/musec/clowder/pkg/user"
)

type Handlers struct {
	User        user.Handler
	Role        role.Handler
	Machine     machine.Handler
	Reservation reservation.Handler
}

func GetEngine(logger *slog.Logger, basePath string, handlers Handlers, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, ssoMiddleware middleware.SSOMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	router.GET("/auth/github", ssoMiddleware.BeginAuthHandler)
	router.GET("/auth/github/callback", ssoMiddleware.SSOAuthentication)
	router.GET("/logout", ssoMiddleware.LogoutHandler)

	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)

	user.Routes(tokenAuthenticationRouter, authorizationMiddleware, handlers.User)
	role.Routes(tokenAuthenticationRouter, handlers.Role)
	machine.Routes(tokenAuthenticationRouter, authorizationMiddleware, handlers.Machine)
	reservation.Routes(tokenAuthenticationRouter, handlers.Reservation)

	return r
}
