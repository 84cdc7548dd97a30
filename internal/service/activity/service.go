package activity

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

// Service exposes the activity log. Nothing in the API writes to it.
type Service struct {
	repo repository.ActivityLogRepository
}

func NewService(repo repository.ActivityLogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRecent(ctx context.Context) ([]*model.ActivityLog, error) {
	logs, err := s.repo.ListRecent(ctx, model.ActivityLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}
