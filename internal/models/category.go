package models

import "time"

// Status values shared by categories and products.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Category groups products in the storefront.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Description string    `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Image       string    `json:"image" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
