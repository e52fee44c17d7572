package role

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
	return &repository{
		db: db,
	}
}

type repository struct {
	db *gorm.DB
}

func (r repository) findAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.
		WithContext(ctx).
		Order("Name").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all roles: %v", err)
	}
	return roles, nil
}

func (r repository) findByName(ctx context.Context, name string) (*model.Role, error) {
	var role *model.Role
	err := r.db.
		WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find role %q", name)
	}
	return role, err
}
