package models

import "time"

// Product is a catalog entry managed through the admin panel.
// Rating and ReviewCount may be zero for products that never collected
// reviews; the storefront listing synthesizes display values for those.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Description string    `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Price       float64   `json:"price" gorm:"not null" validate:"required,gt=0"`
	Image       string    `json:"image" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	CategoryID  uint      `json:"category_id" validate:"required"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:active"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StorefrontProduct is the public listing shape: active products only, the
// category resolved to its name and the rating always populated.
type StorefrontProduct struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// AdminProduct is the admin listing shape: every status, plus the resolved
// category name.
type AdminProduct struct {
	Product
	CategoryName string `json:"category_name"`
}
