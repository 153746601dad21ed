package repositories

import (
	"errors"
	"fmt"

	"casabeleza/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// CreateWithItems writes the order row, its item snapshots and the WhatsApp
// note in one transaction. Any failure rolls everything back; a partially
// created order is never visible.
func (r *GORMOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem, note *models.WhatsappOrder) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		note.OrderID = order.ID
		return tx.Create(note).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.Items = items
	return nil
}

// GetAll retrieves all orders with their items, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetNote retrieves the WhatsApp annotation of an order.
func (r *GORMOrderRepository) GetNote(orderID uint) (*models.WhatsappOrder, error) {
	var note models.WhatsappOrder
	if err := r.db.First(&note, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("whatsapp note for order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to get whatsapp note for order %d: %w", orderID, err)
	}
	return &note, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	return nil
}
