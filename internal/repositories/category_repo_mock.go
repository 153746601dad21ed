package repositories

import (
	"fmt"
	"sort"
	"sync"

	"casabeleza/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[uint]models.Category
	nextID     uint
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[uint]models.Category),
		nextID:     1,
	}
}

// GetAll returns all categories sorted by name.
func (r *MockCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// GetActive returns categories with active status.
func (r *MockCategoryRepository) GetActive() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Category
	for _, c := range r.categories {
		if c.Status == models.StatusActive {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %d not found", id)
	}
	return &category, nil
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == 0 {
		category.ID = r.nextID
		r.nextID++
	} else if category.ID >= r.nextID {
		r.nextID = category.ID + 1
	}
	if category.Status == "" {
		category.Status = models.StatusActive
	}
	r.categories[category.ID] = *category
	return nil
}

// Update modifies an existing category.
func (r *MockCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return fmt.Errorf("category with ID %d not found for update", category.ID)
	}
	r.categories[category.ID] = *category
	return nil
}

// UpdateStatus flips the status of a category.
func (r *MockCategoryRepository) UpdateStatus(id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return fmt.Errorf("category with ID %d not found for status update", id)
	}
	c.Status = status
	r.categories[id] = c
	return nil
}
