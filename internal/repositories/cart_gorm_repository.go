package repositories

import (
	"fmt"

	"casabeleza/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Replace deletes the user's cart rows and inserts items inside a single
// transaction, so a failed insert can never leave the cart half-written.
func (r *GORMCartRepository) Replace(userID uint, items []models.CartItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].UserID = userID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace cart for user %d: %w", userID, err)
	}
	return nil
}

// GetByUser retrieves the cart rows of a user.
func (r *GORMCartRepository) GetByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("product_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %d: %w", userID, err)
	}
	return items, nil
}
