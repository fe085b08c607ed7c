package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"newsportal/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountEntities(ctx context.Context) (*models.PortalStats, error) {
	stats := &models.PortalStats{}

	err := r.db.GetContext(ctx, &stats.Companies, `SELECT COUNT(*) FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте компаний: %w", err)
	}

	err = r.db.GetContext(ctx, &stats.Users, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	err = r.db.GetContext(ctx, &stats.Posts, `SELECT COUNT(*) FROM posts WHERE is_deleted = FALSE`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return stats, nil
}
