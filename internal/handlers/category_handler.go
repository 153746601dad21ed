package handlers

import (
	"log"
	"strings"

	"casabeleza/internal/models"
	"casabeleza/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles the public category listing and the admin
// category CRUD.
type CategoryHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalog *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the storefront category route.
func (h *CategoryHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleListPublic)
}

// RegisterAdminRoutes registers the admin category CRUD routes.
func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleAdminList)
	router.Get("/categories/:id", h.HandleAdminGet)
	router.Post("/categories", h.HandleCreate)
	router.Put("/categories/:id", h.HandleUpdate)
	router.Delete("/categories/:id", h.HandleDelete)
}

// HandleListPublic returns active categories for the storefront filter.
func (h *CategoryHandler) HandleListPublic(c *fiber.Ctx) error {
	categories, err := h.catalog.ListActiveCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleAdminList returns every category regardless of status.
func (h *CategoryHandler) HandleAdminList(c *fiber.Ctx) error {
	categories, err := h.catalog.ListAdminCategories()
	if err != nil {
		log.Printf("Error listing admin categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleAdminGet returns a single category.
func (h *CategoryHandler) HandleAdminGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	category, err := h.catalog.GetCategory(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Printf("Error getting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
		})
	}
	return c.JSON(category)
}

// HandleCreate creates a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	category.ID = 0
	if err := h.catalog.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate updates a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	category.ID = uint(id)
	if err := h.catalog.UpdateCategory(&category); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Printf("Error updating category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update category",
		})
	}
	return c.JSON(category)
}

// HandleDelete retires a category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	if err := h.catalog.DeleteCategory(uint(id)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Printf("Error deleting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
