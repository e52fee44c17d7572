package role

import (
	"context"

	"github.com/musec/clowder/pkg/model"
)

// Roles are static reference data: the service only reads them. Creating or
// changing a role happens out-of-band, by an operator against the database.
func NewService(repository *repository) *Service {
	return &Service{
		repository: repository,
	}
}

type Service struct {
	repository *repository
}

func (s Service) FindAll(ctx context.Context) ([]model.Role, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return s.repository.findByName(ctx, name)
}
