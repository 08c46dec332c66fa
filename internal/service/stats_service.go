package service

import (
	"context"

	"chirp/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*repository.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*repository.Stats, error) {
	return s.statsRepo.CountStats(ctx)
}
