package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"casabeleza/internal/models"
	"casabeleza/internal/repositories"

	"github.com/google/uuid"
)

// OrderEventPublisher publishes order lifecycle events. Implemented by the
// RabbitMQ client; a nil publisher disables events entirely.
type OrderEventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// CheckoutItem is one cart line submitted at checkout.
type CheckoutItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the WhatsApp checkout payload.
type CheckoutRequest struct {
	CustomerName  string         `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail string         `json:"customer_email" validate:"omitempty,email"`
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Message       string         `json:"message" validate:"omitempty,max=2000"`
}

// CheckoutResult is what the storefront needs to finish a checkout: the
// bookkeeping order id and the pre-filled chat link to open.
type CheckoutResult struct {
	OrderID     uint    `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Message     string  `json:"message"`
	WhatsappURL string  `json:"whatsapp_url"`
}

// OrderService handles WhatsApp checkout and the admin order views. The
// server-side order is bookkeeping; payment happens manually over chat.
type OrderService struct {
	orders         repositories.OrderRepository
	products       repositories.ProductRepository
	publisher      OrderEventPublisher
	whatsappNumber string
}

// NewOrderService creates a new OrderService. publisher may be nil when no
// broker is configured.
func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepository, publisher OrderEventPublisher, whatsappNumber string) *OrderService {
	return &OrderService{
		orders:         orders,
		products:       products,
		publisher:      publisher,
		whatsappNumber: whatsappNumber,
	}
}

// CreateWhatsappOrder records the order, its item snapshots and the note in
// one transaction, then returns the wa.me deep link for the storefront to
// open. The total is always recomputed from current product prices, never
// trusted from the client.
func (s *OrderService) CreateWhatsappOrder(req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %d must be positive", line.ProductID)
		}
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d not found: %w", line.ProductID, err)
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalAmount:   total,
		PaymentMethod: "whatsapp",
		Status:        models.OrderStatusPending,
	}
	note := &models.WhatsappOrder{
		CustomerMessage: req.Message,
		WhatsappNumber:  s.whatsappNumber,
	}

	if err := s.orders.CreateWithItems(order, items, note); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"event_id": uuid.New().String(),
			"order_id": order.ID,
			"customer": order.CustomerName,
			"total":    order.TotalAmount,
			"status":   order.Status,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %d: %v", order.ID, err)
		}
	}

	return &CheckoutResult{
		OrderID:     order.ID,
		TotalAmount: total,
		Message:     "Pedido recebido! Finalize pelo WhatsApp.",
		WhatsappURL: s.buildWhatsappURL(order, items, req.Message),
	}, nil
}

// GetAllOrders retrieves all orders for the admin panel.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orders.GetAll()
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orders.GetByID(id)
}

// GetOrderNote retrieves the WhatsApp annotation of an order.
func (s *OrderService) GetOrderNote(orderID uint) (*models.WhatsappOrder, error) {
	return s.orders.GetNote(orderID)
}

// UpdateOrderStatus updates the status of an existing order. Only known
// statuses are accepted; there is no transition graph.
func (s *OrderService) UpdateOrderStatus(id uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}
	if err := s.orders.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}
	return nil
}

// buildWhatsappURL assembles the pre-filled chat message and wraps it in a
// wa.me deep link.
func (s *OrderService) buildWhatsappURL(order *models.Order, items []models.OrderItem, customerMessage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Novo pedido #%d - %s\n\n", order.ID, order.CustomerName)
	for _, item := range items {
		fmt.Fprintf(&b, "- %dx %s (R$ %.2f)\n", item.Quantity, item.ProductName, item.UnitPrice)
	}
	fmt.Fprintf(&b, "\nTotal: R$ %.2f", order.TotalAmount)
	if customerMessage != "" {
		fmt.Fprintf(&b, "\n\nObservações: %s", customerMessage)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsappNumber, url.QueryEscape(b.String()))
}
