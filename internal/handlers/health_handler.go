package handlers

import (
	"time"

	"casabeleza/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler serves the liveness and database probe endpoints.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health routes.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
	router.Get("/test", h.HandleTest)
}

// HandleHealth reports process liveness.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"message": "Servidor funcionando",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// HandleTest runs a cheap query to confirm the database answers.
func (h *HealthHandler) HandleTest(c *fiber.Ctx) error {
	var count int64
	if err := h.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "database unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": count,
	})
}
