package handlers

import (
	"log"

	"casabeleza/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// RegisterAdminRoutes registers the stats route.
func (h *StatsHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/stats", h.HandleStats)
}

// HandleStats recomputes and returns the dashboard figures.
func (h *StatsHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.stats.Collect()
	if err != nil {
		log.Printf("Error collecting stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute stats",
		})
	}
	return c.JSON(stats)
}
