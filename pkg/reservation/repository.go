package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

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

func (r repository) create(ctx context.Context, reservation *model.Reservation) error {
	err := r.db.WithContext(ctx).Create(&reservation).Error
	if err != nil {
		return fmt.Errorf("failed to create reservation: %v", err)
	}
	return nil
}

func (r repository) findByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var reservation *model.Reservation
	err := r.db.
		WithContext(ctx).
		Preload("Machine").
		Preload("User").
		First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find reservation with id %d", id)
	}
	return reservation, err
}

// findAll returns reservations with their machine and user, ordered by
// effective end time descending then by machine id, giving a stable
// most-urgent-first presentation order.
func (r repository) findAll(ctx context.Context, onlyActive bool, now time.Time) ([]*model.Reservation, error) {
	query := r.db.
		WithContext(ctx).
		Preload("Machine").
		Preload("User").
		Order("COALESCE(scheduled_end, actual_end) DESC, machine_id")

	if onlyActive {
		query = query.
			Where("actual_end IS NULL").
			Where("scheduled_start <= ?", now).
			Where("scheduled_end IS NULL OR scheduled_end > ?", now)
	}

	var reservations []*model.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations: %v", err)
	}

	return reservations, nil
}

func (r repository) findForMachine(ctx context.Context, machineID uint) ([]*model.Reservation, error) {
	var reservations []*model.Reservation
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("machine_id = ?", machineID).
		Order("actual_end DESC").
		Order("scheduled_end DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations of machine %d: %v", machineID, err)
	}
	return reservations, nil
}

func (r repository) findForUser(ctx context.Context, userID uint) ([]*model.Reservation, error) {
	var reservations []*model.Reservation
	err := r.db.
		WithContext(ctx).
		Preload("Machine").
		Where("user_id = ?", userID).
		Order("actual_end DESC").
		Order("scheduled_end DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations of user %d: %v", userID, err)
	}
	return reservations, nil
}

// end stamps the reservation's actual end. Ending is a single UPDATE so a row
// deleted concurrently surfaces as not-found rather than a silent no-op.
func (r repository) end(ctx context.Context, id uint, now time.Time) (*model.Reservation, error) {
	db := r.db.
		WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("actual_end", now)
	if db.Error != nil {
		return nil, fmt.Errorf("failed to end reservation %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return nil, errdef.NewNotFound("failed to find reservation with id %d", id)
	}

	return r.findByID(ctx, id)
}
