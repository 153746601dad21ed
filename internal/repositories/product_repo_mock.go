package repositories

import (
	"fmt"
	"sort"
	"sync"

	"casabeleza/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products, newest id first.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// GetActive returns products with active status.
func (r *MockProductRepository) GetActive() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Product
	for _, p := range r.products {
		if p.Status == models.StatusActive {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d not found", id)
	}
	return &product, nil
}

// GetByIDs returns the products matching ids; unknown ids are skipped.
func (r *MockProductRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
		r.nextID++
	} else if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	if product.Status == "" {
		product.Status = models.StatusActive
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// UpdateStatus flips the status of a product.
func (r *MockProductRepository) UpdateStatus(id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %d not found for status update", id)
	}
	p.Status = status
	r.products[id] = p
	return nil
}
