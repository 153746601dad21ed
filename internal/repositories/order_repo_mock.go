package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"casabeleza/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders     map[uint]models.Order
	notes      map[uint]models.WhatsappOrder
	nextID     uint
	nextItemID uint
	mu         sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:     make(map[uint]models.Order),
		notes:      make(map[uint]models.WhatsappOrder),
		nextID:     1,
		nextItemID: 1,
	}
}

// CreateWithItems stores the order, items and note together.
func (r *MockOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem, note *models.WhatsappOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	for i := range items {
		items[i].ID = r.nextItemID
		r.nextItemID++
		items[i].OrderID = order.ID
	}
	order.Items = items
	r.orders[order.ID] = *order

	note.OrderID = order.ID
	r.notes[order.ID] = *note
	return nil
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d not found", id)
	}
	return &order, nil
}

// GetNote returns the WhatsApp annotation of an order.
func (r *MockOrderRepository) GetNote(orderID uint) (*models.WhatsappOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[orderID]
	if !ok {
		return nil, fmt.Errorf("whatsapp note for order %d not found", orderID)
	}
	return &note, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %d not found for status update", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
