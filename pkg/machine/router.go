package machine

import (
	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/middleware"
	"github.com/musec/clowder/pkg/model"
)

func Routes(r *gin.RouterGroup, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/machines", handler.FindAll)
	r.GET("/machines/:name", handler.FindByName)
	r.GET("/processors", handler.FindAllProcessors)

	canCreate := r.Group("")
	canCreate.Use(authorizationMiddleware.RequireCapability(model.CanCreateMachines))
	canCreate.POST("/machines", handler.Create)

	canAlter := r.Group("")
	canAlter.Use(authorizationMiddleware.RequireCapability(model.CanAlterMachines))
	canAlter.PUT("/machines/:name", handler.Update)

	canDelete := r.Group("")
	canDelete.Use(authorizationMiddleware.RequireCapability(model.CanDeleteMachines))
	canDelete.DELETE("/machines/:name", handler.Delete)
}
