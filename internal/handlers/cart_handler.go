package handlers

import (
	"log"
	"strings"

	"casabeleza/internal/models"
	"casabeleza/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the server-side cart of authenticated users. The
// token's user id is authoritative; the path parameter only has to agree
// with it.
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers the cart routes under the authenticated /users
// group.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/:userId/cart", h.HandleGetCart)
	router.Post("/cart", h.HandleSaveCart)
}

// HandleGetCart returns the cart of the authenticated user.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(uint)
	paramID, err := c.ParamsInt("userId")
	if err != nil || paramID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}
	if uint(paramID) != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Cannot read another user's cart",
		})
	}

	lines, err := h.carts.Get(userID)
	if err != nil {
		log.Printf("Error getting cart for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(fiber.Map{
		"items": lines,
	})
}

// SaveCartRequest is the cart replacement payload.
type SaveCartRequest struct {
	Items []models.CartItem `json:"items"`
}

// HandleSaveCart replaces the authenticated user's cart.
func (h *CartHandler) HandleSaveCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(uint)

	var req SaveCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.carts.Replace(userID, req.Items); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error saving cart for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save cart",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart saved successfully",
	})
}
