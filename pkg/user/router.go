package user

import (
	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/middleware"
	"github.com/musec/clowder/pkg/model"
)

func Routes(r *gin.RouterGroup, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/me", handler.Me)
	r.GET("/users/:username", handler.FindByUsername)
	r.PUT("/users/:username", handler.Update)

	canViewUsers := r.Group("")
	canViewUsers.Use(authorizationMiddleware.RequireCapability(model.CanViewUsers))
	canViewUsers.GET("/users", handler.FindAll)
}
