package machine

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

func (r repository) create(ctx context.Context, machine *model.Machine) error {
	err := r.db.WithContext(ctx).Create(&machine).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("machine %q already exists", machine.Name)
	}
	return err
}

func (r repository) findAll(ctx context.Context) ([]*model.Machine, error) {
	var machines []*model.Machine

	err := r.db.
		WithContext(ctx).
		Preload("Processor.Microarchitecture.Architecture").
		Order("Name").
		Find(&machines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all machines: %v", err)
	}

	return machines, nil
}

func (r repository) findByName(ctx context.Context, name string) (*model.Machine, error) {
	var m *model.Machine
	err := r.db.
		WithContext(ctx).
		Preload("Processor.Microarchitecture.Architecture").
		Preload("Disks").
		Preload("Nics").
		Where("name = ?", name).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find machine %q", name)
	}
	return m, err
}

func (r repository) update(ctx context.Context, machine *model.Machine) error {
	err := r.db.
		WithContext(ctx).
		Model(machine).
		Select("ProcessorID", "MemoryGB").
		Updates(machine).Error
	if err != nil {
		return fmt.Errorf("failed to update machine %q: %v", machine.Name, err)
	}
	return nil
}

func (r repository) delete(ctx context.Context, name string) error {
	db := r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Machine{})
	if db.Error != nil {
		return fmt.Errorf("failed to delete machine %q: %v", name, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find machine %q", name)
	}

	return nil
}

func (r repository) findAllProcessors(ctx context.Context) ([]model.Processor, error) {
	var processors []model.Processor
	err := r.db.
		WithContext(ctx).
		Preload("Microarchitecture.Architecture").
		Order("Name").
		Find(&processors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all processors: %v", err)
	}
	return processors, nil
}

func (r repository) findProcessorByID(ctx context.Context, id uint) (*model.Processor, error) {
	var p *model.Processor
	err := r.db.
		WithContext(ctx).
		Preload("Microarchitecture.Architecture").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find processor with id %d", id)
	}
	return p, err
}
