package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxUploadSize caps product images at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

// UploadHandler stores product images under the configured directory and
// returns the public URL the catalog references.
type UploadHandler struct {
	dir       string
	publicURL string
}

// NewUploadHandler creates a new UploadHandler. dir is the filesystem
// destination, publicURL the path prefix the images are served under.
func NewUploadHandler(dir, publicURL string) *UploadHandler {
	return &UploadHandler{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// RegisterRoutes registers the upload route behind the given guard.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/upload", guard, h.HandleUpload)
}

// HandleUpload accepts a multipart "image" field, rejecting anything over
// 5MB or without an image MIME type.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No image uploaded",
		})
	}
	if fileHeader.Size > MaxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image exceeds the 5MB limit",
		})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Only image files are allowed",
		})
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		log.Printf("Error creating upload directory %s: %v", h.dir, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
		})
	}

	filename := fmt.Sprintf("product-%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, filepath.Join(h.dir, filename)); err != nil {
		log.Printf("Error saving uploaded image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"image_url": h.publicURL + "/" + filename,
		"message":   "Image uploaded successfully",
	})
}
