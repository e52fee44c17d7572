package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/musec/clowder/pkg/model"
)

func TestGetUserFromContext(t *testing.T) {
	user := &model.User{
		ID:       1000,
		Username: "alice",
		Roles:    []model.Role{{Name: "user_admin", CanAlterUsers: true}},
	}

	c := &gin.Context{}
	c.Set("user", user)

	u, err := GetUserFromContext(c)
	assert.NoError(t, err)

	assert.Equal(t, uint(1000), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 1, len(u.Roles))
}

func TestGetUserFromContext_NoUser(t *testing.T) {
	c := &gin.Context{}

	u, err := GetUserFromContext(c)
	assert.Error(t, err)
	assert.Nil(t, u)
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	c := &gin.Context{}
	c.Set("user", "not a user")

	u, err := GetUserFromContext(c)
	assert.Error(t, err)
	assert.Nil(t, u)
}
