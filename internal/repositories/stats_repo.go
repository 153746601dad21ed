package repositories

import "casabeleza/internal/models"

// StatsRepository aggregates dashboard figures.
type StatsRepository interface {
	Collect() (*models.DashboardStats, error)
}
