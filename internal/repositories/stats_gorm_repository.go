package repositories

import (
	"fmt"

	"casabeleza/internal/models"

	"gorm.io/gorm"
)

// GORMStatsRepository computes the dashboard aggregates with direct queries.
// Nothing is cached; the dashboard always reflects the current tables.
type GORMStatsRepository struct {
	db *gorm.DB
}

// NewGORMStatsRepository creates a new instance of GORMStatsRepository.
func NewGORMStatsRepository(db *gorm.DB) *GORMStatsRepository {
	return &GORMStatsRepository{db: db}
}

// Collect runs the aggregate queries backing the admin dashboard.
func (r *GORMStatsRepository) Collect() (*models.DashboardStats, error) {
	var stats models.DashboardStats

	if err := r.db.Model(&models.Product{}).
		Where("status = ?", models.StatusActive).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	if err := r.db.Model(&models.Category{}).
		Where("status = ?", models.StatusActive).
		Count(&stats.ActiveCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count active categories: %w", err)
	}
	if err := r.db.Model(&models.Product{}).
		Where("status = ?", models.StatusActive).
		Select("COALESCE(SUM(price * stock), 0)").
		Scan(&stats.StockValue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum stock value: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := r.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &stats, nil
}
