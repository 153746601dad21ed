package services

import (
	"fmt"
	"sync"

	"casabeleza/internal/models"
	"casabeleza/internal/repositories"
)

// Fallback images shown when a product was saved without one, keyed by
// category id with a generic beauty shot as last resort.
var defaultCategoryImages = map[uint]string{
	1: "https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=300&h=300&fit=crop",
	2: "https://images.unsplash.com/photo-1608248549163-6c8b55c4a71a?w=300&h=300&fit=crop",
	3: "https://images.unsplash.com/photo-1590736969955-1d0c72c9b6b9?w=300&h=300&fit=crop",
	4: "https://images.unsplash.com/photo-1556228578-1cfd50779d22?w=300&h=300&fit=crop",
}

const defaultProductImage = "https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?w=300&h=300&fit=crop"

const fallbackCategoryName = "Sem categoria"

// CatalogService owns product and category business logic for both the
// storefront and the admin panel. Category names are resolved through a
// single in-memory cache invalidated on every category mutation, replacing
// the hardcoded lookup maps the clients used to duplicate.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository

	mu        sync.RWMutex
	nameCache map[uint]string
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
	}
}

// ListPublicProducts returns the storefront listing: active products with
// their category name resolved, a fallback image when none was saved, and
// rating figures synthesized for products without reviews.
func (s *CatalogService) ListPublicProducts() ([]models.StorefrontProduct, error) {
	products, err := s.products.GetActive()
	if err != nil {
		return nil, err
	}

	list := make([]models.StorefrontProduct, 0, len(products))
	for _, p := range products {
		list = append(list, models.StorefrontProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    s.CategoryName(p.CategoryID),
			Image:       productImage(p),
			Stock:       p.Stock,
			Rating:      displayRating(p),
			ReviewCount: displayReviewCount(p),
		})
	}
	return list, nil
}

// ListActiveCategories returns the categories shown in the storefront
// filter bar.
func (s *CatalogService) ListActiveCategories() ([]models.Category, error) {
	return s.categories.GetActive()
}

// ListAdminProducts returns every product with its category name, for the
// admin table.
func (s *CatalogService) ListAdminProducts() ([]models.AdminProduct, error) {
	products, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}

	list := make([]models.AdminProduct, 0, len(products))
	for _, p := range products {
		list = append(list, models.AdminProduct{
			Product:      p,
			CategoryName: s.CategoryName(p.CategoryID),
		})
	}
	return list, nil
}

// ListAdminCategories returns every category regardless of status.
func (s *CatalogService) ListAdminCategories() ([]models.Category, error) {
	return s.categories.GetAll()
}

// GetProduct retrieves a single product.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	return s.products.GetByID(id)
}

// GetCategory retrieves a single category.
func (s *CatalogService) GetCategory(id uint) (*models.Category, error) {
	return s.categories.GetByID(id)
}

// CreateProduct creates a product after checking its category exists.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if _, err := s.categories.GetByID(product.CategoryID); err != nil {
		return fmt.Errorf("category %d does not exist", product.CategoryID)
	}
	return s.products.Create(product)
}

// UpdateProduct updates a product after checking its category exists.
// Payloads without a status keep the stored one, so an edit can never
// silently retire a product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if _, err := s.categories.GetByID(product.CategoryID); err != nil {
		return fmt.Errorf("category %d does not exist", product.CategoryID)
	}
	existing, err := s.products.GetByID(product.ID)
	if err != nil {
		return err
	}
	if product.Status == "" {
		product.Status = existing.Status
	}
	product.CreatedAt = existing.CreatedAt
	return s.products.Update(product)
}

// DeleteProduct retires a product from the catalog. The row stays so order
// history keeps resolving; only the status flips.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.products.UpdateStatus(id, models.StatusInactive)
}

// CreateCategory creates a category and drops the name cache.
func (s *CatalogService) CreateCategory(category *models.Category) error {
	if err := s.categories.Create(category); err != nil {
		return err
	}
	s.invalidateNames()
	return nil
}

// UpdateCategory updates a category and drops the name cache. As with
// products, a missing status keeps the stored one.
func (s *CatalogService) UpdateCategory(category *models.Category) error {
	existing, err := s.categories.GetByID(category.ID)
	if err != nil {
		return err
	}
	if category.Status == "" {
		category.Status = existing.Status
	}
	category.CreatedAt = existing.CreatedAt
	if err := s.categories.Update(category); err != nil {
		return err
	}
	s.invalidateNames()
	return nil
}

// DeleteCategory retires a category (status flip) and drops the name cache.
func (s *CatalogService) DeleteCategory(id uint) error {
	if err := s.categories.UpdateStatus(id, models.StatusInactive); err != nil {
		return err
	}
	s.invalidateNames()
	return nil
}

// CategoryName resolves a category id to its name via the cache, loading
// the table once on miss.
func (s *CatalogService) CategoryName(id uint) string {
	s.mu.RLock()
	if s.nameCache != nil {
		name, ok := s.nameCache[id]
		s.mu.RUnlock()
		if ok {
			return name
		}
		return fallbackCategoryName
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameCache == nil {
		cache := make(map[uint]string)
		categories, err := s.categories.GetAll()
		if err != nil {
			// Leave the cache unset so the next call retries.
			return fallbackCategoryName
		}
		for _, c := range categories {
			cache[c.ID] = c.Name
		}
		s.nameCache = cache
	}
	if name, ok := s.nameCache[id]; ok {
		return name
	}
	return fallbackCategoryName
}

func (s *CatalogService) invalidateNames() {
	s.mu.Lock()
	s.nameCache = nil
	s.mu.Unlock()
}

func productImage(p models.Product) string {
	if p.Image != "" {
		return p.Image
	}
	if img, ok := defaultCategoryImages[p.CategoryID]; ok {
		return img
	}
	return defaultProductImage
}

// displayRating keeps the storefront's "everything looks reviewed" behavior
// without randomness: products with no real rating get a stable 4.0-4.9
// derived from their id.
func displayRating(p models.Product) float64 {
	if p.Rating > 0 {
		return p.Rating
	}
	return 4.0 + float64(p.ID%10)*0.1
}

func displayReviewCount(p models.Product) int {
	if p.ReviewCount > 0 {
		return p.ReviewCount
	}
	return 50 + int(p.ID*7%100)
}
