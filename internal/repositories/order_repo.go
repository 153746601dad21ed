package repositories

import (
	"casabeleza/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems inserts the order, its item snapshots and the
	// WhatsApp note atomically.
	CreateWithItems(order *models.Order, items []models.OrderItem, note *models.WhatsappOrder) error
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetNote(orderID uint) (*models.WhatsappOrder, error)
	UpdateStatus(id uint, status string) error
}
