package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/pkg/model"
)

func NewHandler(userService userService) Handler {
	return Handler{
		userService: userService,
	}
}

type Handler struct {
	userService userService
}

type userService interface {
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateName(ctx context.Context, user *model.User, name string) error
	SetEmails(ctx context.Context, user *model.User, addresses []string) error
	SetRoles(ctx context.Context, user *model.User, roleNames []string) error
}

// Me returns the authenticated user's own details.
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// Current user details
	//
	// responses:
	//   200: User
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindAll returns all users ordered by username.
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /users findAllUsers
	//
	// Find users
	//
	// Find all users with their emails and roles
	//
	// responses:
	//   200: []User
	//   401: Error
	//   403: Error
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// FindByUsername returns a single user by username.
func (h Handler) FindByUsername(c *gin.Context) {
	// swagger:route GET /users/{username} findUserByUsername
	//
	// Find user
	//
	// responses:
	//   200: User
	//   401: Error
	//   404: Error
	user, err := h.userService.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Name   string   `json:"name" binding:"required"`
	Emails []string `json:"emails" binding:"omitempty,dive,email"`
	Roles  []string `json:"roles"`
}

// Update changes a user's details. Users may change their own name; only
// holders of can_alter_users may touch other users, email sets, or role sets.
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /users/{username} updateUser
	//
	// Update user
	//
	// Update a user's name and, for user administrators, their complete email
	// and role sets
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	var request UpdateUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	caller, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()

	target, err := h.userService.FindByUsername(ctx, c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	myself := target.ID == caller.ID
	superuser := caller.HasCapability(model.CanAlterUsers)

	if !myself && !superuser {
		_ = c.Error(errdef.NewForbidden("user %q not permitted to update other users", caller.Username))
		return
	}

	if err := h.userService.UpdateName(ctx, target, request.Name); err != nil {
		_ = c.Error(err)
		return
	}

	// Email addresses are almost akin to login credentials and roles are
	// grants, so both sets are reserved to user administrators.
	if superuser {
		if err := h.userService.SetEmails(ctx, target, request.Emails); err != nil {
			_ = c.Error(err)
			return
		}

		if err := h.userService.SetRoles(ctx, target, request.Roles); err != nil {
			_ = c.Error(err)
			return
		}
	}

	updated, err := h.userService.FindByID(ctx, target.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
