package user

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

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findByID(ctx, id)
}

func (s Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repository.findByUsername(ctx, username)
}

func (s Service) FindByEmail(ctx context.Context, address string) (*model.User, error) {
	return s.repository.findByEmail(ctx, address)
}

func (s Service) FindByGithubUsername(ctx context.Context, githubUsername string) (*model.User, error) {
	return s.repository.findByGithubUsername(ctx, githubUsername)
}

func (s Service) UpdateName(ctx context.Context, user *model.User, name string) error {
	if user.Name == name {
		return nil
	}
	return s.repository.updateName(ctx, user, name)
}

func (s Service) SetEmails(ctx context.Context, user *model.User, addresses []string) error {
	return s.repository.setEmails(ctx, user, addresses)
}

func (s Service) SetRoles(ctx context.Context, user *model.User, roleNames []string) error {
	return s.repository.setRoles(ctx, user, roleNames)
}

// HasCapability answers whether the user identified by id holds capability
// through any of their roles. A storage failure propagates as an error so the
// caller can decide between failing closed and surfacing the failure; it is
// never collapsed into "denied" here.
func (s Service) HasCapability(ctx context.Context, id uint, capability model.Capability) (bool, error) {
	user, err := s.repository.findByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.HasCapability(capability), nil
}
