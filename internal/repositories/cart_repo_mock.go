package repositories

import (
	"sort"
	"sync"

	"casabeleza/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[uint][]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[uint][]models.CartItem),
	}
}

// Replace swaps the whole cart of a user.
func (r *MockCartRepository) Replace(userID uint, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]models.CartItem, len(items))
	for i, item := range items {
		item.UserID = userID
		stored[i] = item
	}
	r.carts[userID] = stored
	return nil
}

// GetByUser returns the cart rows of a user ordered by product id.
func (r *MockCartRepository) GetByUser(userID uint) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, len(r.carts[userID]))
	copy(items, r.carts[userID])
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}
