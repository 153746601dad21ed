package services

import (
	"fmt"
	"sort"

	"casabeleza/internal/models"
	"casabeleza/internal/repositories"
)

// CartService owns the server-side cart. The API is the source of truth for
// authenticated users; anonymous carts live purely in the browser and never
// reach this service.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// Replace swaps the user's whole cart. Lines with quantity <= 0 are dropped,
// duplicate product ids are merged, and every remaining product must exist.
func (s *CartService) Replace(userID uint, items []models.CartItem) error {
	merged := make(map[uint]int)
	var order []uint
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if _, seen := merged[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		merged[item.ProductID] += item.Quantity
	}

	if len(merged) > 0 {
		found, err := s.products.GetByIDs(order)
		if err != nil {
			return err
		}
		known := make(map[uint]bool, len(found))
		for _, p := range found {
			known[p.ID] = true
		}
		for _, id := range order {
			if !known[id] {
				return fmt.Errorf("product with ID %d not found", id)
			}
		}
	}

	clean := make([]models.CartItem, 0, len(merged))
	for _, id := range order {
		clean = append(clean, models.CartItem{
			UserID:    userID,
			ProductID: id,
			Quantity:  merged[id],
		})
	}
	return s.carts.Replace(userID, clean)
}

// Get returns the user's cart joined with current product data.
func (s *CartService) Get(userID uint) ([]models.CartLine, error) {
	items, err := s.carts.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.CartLine{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			// Product hard-removed under the cart; skip the orphan line.
			continue
		}
		lines = append(lines, models.CartLine{
			ProductID: item.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  item.Quantity,
			Subtotal:  p.Price * float64(item.Quantity),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines, nil
}
