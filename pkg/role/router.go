package role

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, handler Handler) {
	r.GET("/roles", handler.FindAll)
	r.GET("/roles/:name", handler.FindByName)
}
