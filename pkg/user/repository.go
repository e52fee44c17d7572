package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) findAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User

	err := r.db.
		WithContext(ctx).
		Preload("Emails").
		Preload("Roles").
		Order("Username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all users: %v", err)
	}

	return users, nil
}

func (r repository) findByID(ctx context.Context, id uint) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Emails").
		Preload("Roles").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with id %d", id)
	}
	return u, err
}

func (r repository) findByUsername(ctx context.Context, username string) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Emails").
		Preload("Roles").
		Where("username = ?", username).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user %q", username)
	}
	return u, err
}

func (r repository) findByEmail(ctx context.Context, address string) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Emails").
		Preload("Roles").
		Joins("JOIN emails ON emails.user_id = users.id").
		Where("emails.address = ?", address).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with email %q", address)
	}
	return u, err
}

func (r repository) findByGithubUsername(ctx context.Context, githubUsername string) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Emails").
		Preload("Roles").
		Joins("JOIN github_accounts ON github_accounts.user_id = users.id").
		Where("github_accounts.github_username = ?", githubUsername).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with GitHub login %q", githubUsername)
	}
	return u, err
}

func (r repository) updateName(ctx context.Context, user *model.User, name string) error {
	err := r.db.
		WithContext(ctx).
		Model(user).
		Update("name", name).Error
	if err != nil {
		return fmt.Errorf("failed to update name of user %q: %v", user.Username, err)
	}
	return nil
}

// setEmails replaces the user's complete set of email addresses, deleting
// current addresses absent from the new set and inserting new ones. The whole
// reconciliation runs in one transaction so a mid-sequence failure cannot
// leave it half-applied.
func (r repository) setEmails(ctx context.Context, user *model.User, addresses []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []model.Email
		if err := tx.Where("user_id = ?", user.ID).Find(&current).Error; err != nil {
			return err
		}

		currentAddresses := make([]string, len(current))
		for i, email := range current {
			currentAddresses[i] = email.Address
		}

		toAdd, toRemove := diff(currentAddresses, addresses)

		if len(toRemove) > 0 {
			err := tx.Where("user_id = ? AND address IN ?", user.ID, toRemove).Delete(&model.Email{}).Error
			if err != nil {
				return err
			}
		}

		for _, address := range toAdd {
			email := model.Email{UserID: user.ID, Address: address}
			if err := tx.Create(&email).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errdef.NewDuplicated("email %q already belongs to another user", address)
				}
				return err
			}
		}

		return nil
	})
}

// setRoles replaces the user's complete set of role memberships. Unknown role
// names fail the whole reconciliation; roles are reference data, not created
// on demand.
func (r repository) setRoles(ctx context.Context, user *model.User, roleNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []model.Role
		err := tx.Model(user).Association("Roles").Find(&current)
		if err != nil {
			return err
		}

		currentNames := make([]string, len(current))
		rolesByName := make(map[string]model.Role, len(current))
		for i, role := range current {
			currentNames[i] = role.Name
			rolesByName[role.Name] = role
		}

		toAdd, toRemove := diff(currentNames, roleNames)

		for _, name := range toRemove {
			role := rolesByName[name]
			if err := tx.Model(user).Association("Roles").Delete(&role); err != nil {
				return err
			}
		}

		for _, name := range toAdd {
			var role model.Role
			err := tx.Where("name = ?", name).First(&role).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errdef.NewNotFound("failed to find role %q", name)
			}
			if err != nil {
				return err
			}

			if err := tx.Model(user).Association("Roles").Append(&role); err != nil {
				return err
			}
		}

		return nil
	})
}
