package startups

import (
	"context"
	"errors"

	"launchrate/pkg/access"
)

var ErrInvalidVisibility = errors.New("invalid visibility")

type StartupService interface {
	CreateStartup(ctx context.Context, input Startup) (Startup, error)
	UpdateStartup(ctx context.Context, actorUUID string, input Startup) (Startup, error)
	DeleteStartup(ctx context.Context, actorUUID string, id int64) error
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]Startup, error)
}

type startupService struct {
	repo StartupRepository
}

func NewStartupService(repo StartupRepository) StartupService {
	return &startupService{repo: repo}
}

func (s *startupService) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	if input.Visibility == "" {
		input.Visibility = VisibilityPublic
	}
	if !IsValidVisibility(input.Visibility) {
		return Startup{}, ErrInvalidVisibility
	}
	return s.repo.CreateStartup(ctx, input)
}

func (s *startupService) UpdateStartup(ctx context.Context, actorUUID string, input Startup) (Startup, error) {
	if input.Visibility == "" {
		input.Visibility = VisibilityPublic
	}
	if !IsValidVisibility(input.Visibility) {
		return Startup{}, ErrInvalidVisibility
	}

	ownerUUID, err := s.repo.OwnerUUID(ctx, input.ID)
	if err != nil {
		return Startup{}, err
	}
	if err := access.RequireOwner(ownerUUID, actorUUID); err != nil {
		return Startup{}, err
	}

	return s.repo.UpdateStartup(ctx, input)
}

func (s *startupService) DeleteStartup(ctx context.Context, actorUUID string, id int64) error {
	ownerUUID, err := s.repo.OwnerUUID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(ownerUUID, actorUUID); err != nil {
		return err
	}
	return s.repo.DeleteStartup(ctx, id)
}

func (s *startupService) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	return s.repo.GetStartupByID(ctx, id)
}

func (s *startupService) ListStartupsByOwner(ctx context.Context, ownerUUID string) ([]Startup, error) {
	return s.repo.ListStartupsByOwner(ctx, ownerUUID)
}
