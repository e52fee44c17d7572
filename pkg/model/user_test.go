package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/musec/clowder/pkg/model"
)

func TestUser_HasCapability(t *testing.T) {
	machineAdmin := model.Role{
		Name:              "machine_admin",
		CanAlterMachines:  true,
		CanCreateMachines: true,
		CanDeleteMachines: true,
	}
	userAdmin := model.Role{
		Name:          "user_admin",
		CanAlterUsers: true,
		CanViewUsers:  true,
	}

	nobody := &model.User{Username: "nobody"}
	assert.False(t, nobody.HasCapability(model.CanAlterMachines))
	assert.False(t, nobody.HasCapability(model.CanViewUsers))

	alice := &model.User{Username: "alice", Roles: []model.Role{machineAdmin}}
	assert.True(t, alice.HasCapability(model.CanAlterMachines))
	assert.True(t, alice.HasCapability(model.CanCreateMachines))
	assert.False(t, alice.HasCapability(model.CanAlterUsers))

	// Capabilities accumulate across roles; one grant suffices no matter how
	// many other roles withhold it.
	alice.Roles = append(alice.Roles, userAdmin)
	assert.True(t, alice.HasCapability(model.CanAlterMachines))
	assert.True(t, alice.HasCapability(model.CanAlterUsers))
	assert.True(t, alice.HasCapability(model.CanViewUsers))

	assert.False(t, alice.HasCapability(model.Capability("can_fly")))
}

func TestUser_InhabitsRole(t *testing.T) {
	user := &model.User{Roles: []model.Role{{Name: "user_admin"}}}
	assert.True(t, user.InhabitsRole("user_admin"))
	assert.False(t, user.InhabitsRole("machine_admin"))
}

func TestUser_EmailAddresses(t *testing.T) {
	user := &model.User{Emails: []model.Email{
		{Address: "alice@example.org"},
		{Address: "alice@example.com"},
	}}
	assert.Equal(t, []string{"alice@example.org", "alice@example.com"}, user.EmailAddresses())
}

func TestUserContext(t *testing.T) {
	user := &model.User{
		ID:       1000,
		Username: "alice",
		Roles:    []model.Role{{Name: "user_admin", CanViewUsers: true}},
	}

	ctx := context.Background()

	got, ok := model.GetUserFromContext(ctx)
	assert.Nil(t, got, "want nil when no user is in the context")
	assert.False(t, ok)

	ctx = model.NewContextWithUser(ctx, user)

	got, ok = model.GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(1000), got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, 1, len(got.Roles))
}
