package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

// Stats - сводные счетчики для служебного эндпоинта
type Stats struct {
	Users   int `json:"users"`
	Tweets  int `json:"tweets"`
	Follows int `json:"follows"`
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := r.db.GetContext(ctx, &stats.Users, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.Tweets, `SELECT COUNT(*) FROM tweets`); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете твитов: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.Follows, `SELECT COUNT(*) FROM follows`); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете подписок: %w", err)
	}

	return &stats, nil
}
