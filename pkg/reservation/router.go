package reservation

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, handler Handler) {
	r.GET("/reservations", handler.FindAll)
	r.POST("/reservations", handler.Create)
	r.GET("/reservations/:id", handler.FindByID)
	r.POST("/reservations/:id/end", handler.End)

	r.GET("/machines/:name/reservations", handler.FindForMachine)
	r.GET("/users/:username/reservations", handler.FindForUser)
}
