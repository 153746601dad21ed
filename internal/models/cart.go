package models

import "time"

// CartItem is the server-side cart mirror for an authenticated user.
// One row per (user, product); quantity is always >= 1, a line that would
// drop to zero is removed instead.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;not null" validate:"required"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is a cart row joined with current product data, the shape the
// storefront renders.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// DashboardStats is the admin dashboard aggregate block.
type DashboardStats struct {
	ActiveProducts   int64   `json:"active_products"`
	ActiveCategories int64   `json:"active_categories"`
	StockValue       float64 `json:"stock_value"`
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	TotalUsers       int64   `json:"total_users"`
}
