package model

import "time"

// User domain object defining a lab user. Users are created out-of-band (by an
// operator seeding the database); the service itself never auto-provisions them.
type User struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Username       string          `gorm:"index;unique" json:"username"`
	Name           string          `json:"name"`
	Emails         []Email         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"emails"`
	Roles          []Role          `gorm:"many2many:role_assignments;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"roles"`
	GithubAccounts []GithubAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"githubAccounts"`
}

// Email is an address owned by a user. Addresses are almost akin to login
// credentials (GitHub identities are matched against them), so they form a
// separate uniquely-constrained collection rather than a column on User.
type Email struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	UserID  uint   `json:"userId"`
	Address string `gorm:"index;unique" json:"address"`
}

// GithubAccount links a verified GitHub login to a user.
type GithubAccount struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	UserID         uint   `json:"userId"`
	GithubUsername string `gorm:"index;unique" json:"githubUsername"`
}

// Capability is a named permission granted through role membership.
type Capability string

const (
	CanAlterMachines  Capability = "can_alter_machines"
	CanAlterUsers     Capability = "can_alter_users"
	CanCreateMachines Capability = "can_create_machines"
	CanDeleteMachines Capability = "can_delete_machines"
	CanViewUsers      Capability = "can_view_users"
)

// Role is reference data: a named, fixed set of capability flags. Adding a
// capability means adding a column.
type Role struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Name              string    `gorm:"index;unique" json:"name"`
	CanAlterMachines  bool      `json:"canAlterMachines"`
	CanAlterUsers     bool      `json:"canAlterUsers"`
	CanCreateMachines bool      `json:"canCreateMachines"`
	CanDeleteMachines bool      `json:"canDeleteMachines"`
	CanViewUsers      bool      `json:"canViewUsers"`
}

// Grants reports whether the role grants the given capability.
func (r Role) Grants(capability Capability) bool {
	switch capability {
	case CanAlterMachines:
		return r.CanAlterMachines
	case CanAlterUsers:
		return r.CanAlterUsers
	case CanCreateMachines:
		return r.CanCreateMachines
	case CanDeleteMachines:
		return r.CanDeleteMachines
	case CanViewUsers:
		return r.CanViewUsers
	}
	return false
}

// HasCapability reports whether any of the user's roles grants the capability.
// The role set must have been preloaded; a user holding no roles has no capabilities.
func (u *User) HasCapability(capability Capability) bool {
	for _, role := range u.Roles {
		if role.Grants(capability) {
			return true
		}
	}
	return false
}

// InhabitsRole reports whether the user holds the named role.
func (u *User) InhabitsRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// EmailAddresses returns the user's addresses as a plain string slice.
func (u *User) EmailAddresses() []string {
	addresses := make([]string, len(u.Emails))
	for i, email := range u.Emails {
		addresses[i] = email.Address
	}
	return addresses
}
