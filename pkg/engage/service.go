package engage

import (
	"context"
	"errors"
)

var ErrInvalidType = errors.New("invalid engagement type")

type EngagementService interface {
	Toggle(ctx context.Context, startupID int64, userUUID, engType string) (bool, error)
	ListByUser(ctx context.Context, userUUID string) ([]Engagement, error)
}

type engagementService struct {
	repo EngagementRepository
}

func NewEngagementService(repo EngagementRepository) EngagementService {
	return &engagementService{repo: repo}
}

func (s *engagementService) Toggle(ctx context.Context, startupID int64, userUUID, engType string) (bool, error) {
	if !IsValidType(engType) {
		return false, ErrInvalidType
	}
	return s.repo.Toggle(ctx, startupID, userUUID, engType)
}

func (s *engagementService) ListByUser(ctx context.Context, userUUID string) ([]Engagement, error) {
	return s.repo.ListByUser(ctx, userUUID)
}
