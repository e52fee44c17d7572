package role

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/pkg/model"
)

func NewHandler(roleService roleService) Handler {
	return Handler{
		roleService: roleService,
	}
}

type Handler struct {
	roleService roleService
}

type roleService interface {
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
}

// FindAll returns all roles ordered by name, so clients can present role
// membership choices.
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /roles findAllRoles
	//
	// Find roles
	//
	// responses:
	//   200: []Role
	//   401: Error
	roles, err := h.roleService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, roles)
}

// FindByName returns a single role with its capability flags.
func (h Handler) FindByName(c *gin.Context) {
	// swagger:route GET /roles/{name} findRoleByName
	//
	// Find role
	//
	// responses:
	//   200: Role
	//   401: Error
	//   404: Error
	role, err := h.roleService.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, role)
}
