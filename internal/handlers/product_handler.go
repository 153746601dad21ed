package handlers

import (
	"log"
	"strings"

	"casabeleza/internal/models"
	"casabeleza/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles the public product listing and the admin product
// CRUD.
type ProductHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the storefront product route.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListPublic)
}

// RegisterAdminRoutes registers the admin product CRUD routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/products", h.HandleAdminList)
	router.Get("/products/:id", h.HandleAdminGet)
	router.Post("/products", h.HandleCreate)
	router.Put("/products/:id", h.HandleUpdate)
	router.Delete("/products/:id", h.HandleDelete)
}

// HandleListPublic returns active products for the storefront grid.
func (h *ProductHandler) HandleListPublic(c *fiber.Ctx) error {
	products, err := h.catalog.ListPublicProducts()
	if err != nil {
		log.Printf("Error listing public products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleAdminList returns every product with its category name.
func (h *ProductHandler) HandleAdminList(c *fiber.Ctx) error {
	products, err := h.catalog.ListAdminProducts()
	if err != nil {
		log.Printf("Error listing admin products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleAdminGet returns a single product.
func (h *ProductHandler) HandleAdminGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	product, err := h.catalog.GetProduct(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleCreate creates a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	product.ID = 0
	if err := h.catalog.CreateProduct(&product); err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate updates a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	product.ID = uint(id)
	if err := h.catalog.UpdateProduct(&product); err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}
	return c.JSON(product)
}

// HandleDelete retires a product from the catalog.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	if err := h.catalog.DeleteProduct(uint(id)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
