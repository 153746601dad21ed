package services

import (
	"casabeleza/internal/models"
	"casabeleza/internal/repositories"
)

// StatsService exposes the admin dashboard aggregates.
type StatsService struct {
	repo repositories.StatsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo repositories.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Collect recomputes the dashboard figures from the database on every call.
func (s *StatsService) Collect() (*models.DashboardStats, error) {
	return s.repo.Collect()
}
