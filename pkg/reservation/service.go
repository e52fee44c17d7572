package reservation

import (
	"context"
	"time"

	"github.com/musec/clowder/pkg/model"
)

func NewService(repository *repository, userService userService, machineService machineService) *Service {
	return &Service{
		repository:     repository,
		userService:    userService,
		machineService: machineService,
	}
}

type userService interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type machineService interface {
	FindByName(ctx context.Context, name string) (*model.Machine, error)
}

type Service struct {
	repository     *repository
	userService    userService
	machineService machineService
}

// Create schedules a reservation of a machine for a user. User and machine
// are resolved by name and must exist. Overlapping reservations for the same
// machine are not rejected; conflicts are resolved manually by operators.
func (s Service) Create(ctx context.Context, username, machineName string, start time.Time, end *time.Time, pxePath, nfsRoot string) (*model.Reservation, error) {
	user, err := s.userService.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	machine, err := s.machineService.FindByName(ctx, machineName)
	if err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		UserID:         user.ID,
		MachineID:      machine.ID,
		ScheduledStart: start,
		ScheduledEnd:   end,
	}
	if pxePath != "" {
		reservation.PxePath = &pxePath
	}
	if nfsRoot != "" {
		reservation.NfsRoot = &nfsRoot
	}

	if err := s.repository.create(ctx, reservation); err != nil {
		return nil, err
	}

	return s.repository.findByID(ctx, reservation.ID)
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	return s.repository.findByID(ctx, id)
}

func (s Service) FindAll(ctx context.Context, onlyActive bool) ([]*model.Reservation, error) {
	return s.repository.findAll(ctx, onlyActive, time.Now())
}

func (s Service) FindForMachine(ctx context.Context, machineName string) ([]*model.Reservation, error) {
	machine, err := s.machineService.FindByName(ctx, machineName)
	if err != nil {
		return nil, err
	}
	return s.repository.findForMachine(ctx, machine.ID)
}

func (s Service) FindForUser(ctx context.Context, username string) ([]*model.Reservation, error) {
	user, err := s.userService.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repository.findForUser(ctx, user.ID)
}

// End marks the reservation as concluded right now. Ending an already-ended
// reservation re-stamps the actual end; the terminal state is re-confirmed
// but the original end time is lost.
func (s Service) End(ctx context.Context, id uint) (*model.Reservation, error) {
	if _, err := s.repository.findByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repository.end(ctx, id, time.Now())
}
