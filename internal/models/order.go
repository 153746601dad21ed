package models

import "time"

// Order statuses the admin panel may set. There is no enforced transition
// graph; the dashboard moves orders freely between these.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is created on WhatsApp checkout. It is bookkeeping for the admin
// dashboard; the actual transaction is settled manually over chat.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	CustomerName  string      `json:"customer_name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	CustomerEmail string      `json:"customer_email" gorm:"type:varchar(255)" validate:"omitempty,email"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method" gorm:"type:varchar(50)"`
	Status        string      `json:"status" gorm:"type:varchar(20);default:pending"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem snapshots a product at order time; later product edits must not
// rewrite order history.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     uint    `json:"order_id" gorm:"index;not null"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name" gorm:"type:varchar(255)"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// WhatsappOrder annotates an order with the free-text customer message and
// the store number the chat was opened against.
type WhatsappOrder struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	OrderID         uint      `json:"order_id" gorm:"index;not null"`
	CustomerMessage string    `json:"customer_message" gorm:"type:text"`
	WhatsappNumber  string    `json:"whatsapp_number" gorm:"type:varchar(30)"`
	CreatedAt       time.Time `json:"created_at"`
}
