package service

import (
	"context"
	"fmt"

	"newsportal/internal/apperrors"
	"newsportal/internal/models"
	"newsportal/internal/permissions"
	"newsportal/internal/repository"
)

type StatsService interface {
	PortalStats(ctx context.Context, actor *models.User) (*models.PortalStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	evaluator *permissions.Evaluator
}

func NewStatsService(statsRepo repository.StatsRepository, evaluator *permissions.Evaluator) StatsService {
	return &statsService{statsRepo: statsRepo, evaluator: evaluator}
}

func (s *statsService) PortalStats(ctx context.Context, actor *models.User) (*models.PortalStats, error) {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return nil, fmt.Errorf("статистика доступна только staff: %w", apperrors.ErrForbidden)
	}

	return s.statsRepo.CountEntities(ctx)
}
