package machine

import (
	"context"

	"github.com/musec/clowder/pkg/model"
)

func NewService(repository *repository) *Service {
	return &Service{
		repository: repository,
	}
}

type Service struct {
	repository *repository
}

// Create adds a machine to the inventory. The processor must already exist;
// the descriptive hierarchy above it is reference data.
func (s Service) Create(ctx context.Context, name string, processorID uint, memoryGB int) (*model.Machine, error) {
	processor, err := s.repository.findProcessorByID(ctx, processorID)
	if err != nil {
		return nil, err
	}

	machine := &model.Machine{
		Name:        name,
		ProcessorID: processor.ID,
		MemoryGB:    memoryGB,
	}

	if err := s.repository.create(ctx, machine); err != nil {
		return nil, err
	}

	return s.repository.findByName(ctx, machine.Name)
}

func (s Service) FindAll(ctx context.Context) ([]*model.Machine, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindByName(ctx context.Context, name string) (*model.Machine, error) {
	return s.repository.findByName(ctx, name)
}

func (s Service) Update(ctx context.Context, name string, processorID uint, memoryGB int) (*model.Machine, error) {
	machine, err := s.repository.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.repository.findProcessorByID(ctx, processorID); err != nil {
		return nil, err
	}

	machine.ProcessorID = processorID
	machine.MemoryGB = memoryGB

	if err := s.repository.update(ctx, machine); err != nil {
		return nil, err
	}

	return s.repository.findByName(ctx, name)
}

func (s Service) Delete(ctx context.Context, name string) error {
	return s.repository.delete(ctx, name)
}

func (s Service) FindAllProcessors(ctx context.Context) ([]model.Processor, error) {
	return s.repository.findAllProcessors(ctx)
}
