package repositories

import "casabeleza/internal/models"

// CartRepository defines the interface for server-side cart data access.
type CartRepository interface {
	// Replace swaps the whole cart of a user for items in one atomic step.
	Replace(userID uint, items []models.CartItem) error
	GetByUser(userID uint) ([]models.CartItem, error)
}
