package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"casabeleza/internal/handlers"
	"casabeleza/internal/middleware"
	"casabeleza/internal/models"
	"casabeleza/internal/repositories"
	"casabeleza/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "integration_test_secret"

type testEnv struct {
	app  *fiber.App
	auth *services.AuthService
	db   *gorm.DB
}

// setupApp wires the whole HTTP surface against a fresh in-memory SQLite
// database, mirroring the wiring in main.go minus the message broker.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.AdminUser{},
		&models.Order{},
		&models.OrderItem{},
		&models.WhatsappOrder{},
		&models.CartItem{},
	))

	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	adminRepo := repositories.NewGORMAdminRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	statsRepo := repositories.NewGORMStatsRepository(db)

	authService := services.NewAuthService(userRepo, adminRepo, testSecret)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, nil, "559391445597")
	statsService := services.NewStatsService(statsRepo)

	// Seed the fixture catalog and the default admin account.
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Maquiagem", Description: "Batons e bases"}))
	require.NoError(t, categoryRepo.Create(&models.Category{Name: "Cabelos", Description: "Shampoos"}))
	require.NoError(t, productRepo.Create(&models.Product{Name: "Batom Matte", Description: "Longa duração", Price: 29.90, CategoryID: 1, Stock: 50}))
	require.NoError(t, productRepo.Create(&models.Product{Name: "Shampoo Hidratante", Price: 24.50, CategoryID: 2, Stock: 30}))
	require.NoError(t, productRepo.Create(&models.Product{Name: "Base Antiga", Price: 19.90, CategoryID: 1, Stock: 0, Status: models.StatusInactive}))

	hash, err := authService.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, adminRepo.Create(&models.AdminUser{Username: "admin", Email: "admin@casabeleza.com", PasswordHash: hash}))

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	api := app.Group("/api")

	handlers.NewHealthHandler(db).RegisterRoutes(api)
	handlers.NewAuthHandler(authService).RegisterRoutes(api)

	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler.RegisterPublicRoutes(api)
	categoryHandler.RegisterPublicRoutes(api)
	orderHandler.RegisterPublicRoutes(api)

	userArea := api.Group("/users", middleware.UserRequired(authService))
	handlers.NewCartHandler(cartService).RegisterRoutes(userArea)

	adminArea := api.Group("/admin", middleware.AdminRequired(authService))
	productHandler.RegisterAdminRoutes(adminArea)
	categoryHandler.RegisterAdminRoutes(adminArea)
	orderHandler.RegisterAdminRoutes(adminArea)
	handlers.NewStatsHandler(statsService).RegisterAdminRoutes(adminArea)
	handlers.NewUploadHandler(t.TempDir(), "/images/products").RegisterRoutes(api, middleware.AdminRequired(authService))

	return &testEnv{app: app, auth: authService, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/admin/login", "", fiber.Map{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (e *testEnv) registerUser(t *testing.T, email string) (string, uint) {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/users/register", "", fiber.Map{
		"name":     "Maria Silva",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	require.NotZero(t, body.User.ID)
	return body.Token, body.User.ID
}

func TestHealthEndpoints(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decodeJSON(t, resp, &health)
	assert.Equal(t, "OK", health["status"])

	resp = env.request(t, http.MethodGet, "/api/test", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var probe map[string]interface{}
	decodeJSON(t, resp, &probe)
	assert.Equal(t, true, probe["success"])
	assert.Equal(t, float64(3), probe["products"])
}

func TestPublicProductListing(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.StorefrontProduct
	decodeJSON(t, resp, &products)
	require.Len(t, products, 2, "inactive products must not reach the storefront")

	for _, p := range products {
		assert.NotEqual(t, "Base Antiga", p.Name)
		assert.NotEmpty(t, p.Category)
		assert.NotEmpty(t, p.Image)
		assert.Greater(t, p.Rating, 0.0)
		assert.Greater(t, p.ReviewCount, 0)
	}
}

func TestPublicCategoryListing(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []models.Category
	decodeJSON(t, resp, &categories)
	require.Len(t, categories, 2)
}

func TestUserRegistrationAndLogin(t *testing.T) {
	env := setupApp(t)

	token, userID := env.registerUser(t, "maria@example.com")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)

	// Same e-mail again is a client error with the storefront message.
	resp := env.request(t, http.MethodPost, "/api/users/register", "", fiber.Map{
		"name":     "Outra Maria",
		"email":    "maria@example.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var dup map[string]interface{}
	decodeJSON(t, resp, &dup)
	assert.Equal(t, "E-mail já cadastrado", dup["message"])

	// Login with the right and wrong password.
	resp = env.request(t, http.MethodPost, "/api/users/login", "", fiber.Map{
		"email":    "maria@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/users/login", "", fiber.Map{
		"email":    "maria@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Registration payloads are validated.
	resp = env.request(t, http.MethodPost, "/api/users/register", "", fiber.Map{
		"name":     "X",
		"email":    "not-an-email",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminLogin(t *testing.T) {
	env := setupApp(t)

	token := env.adminToken(t)
	assert.NotEmpty(t, token)

	resp := env.request(t, http.MethodPost, "/api/admin/login", "", fiber.Map{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminGuard(t *testing.T) {
	env := setupApp(t)

	// No token.
	resp := env.request(t, http.MethodGet, "/api/admin/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage token.
	resp = env.request(t, http.MethodGet, "/api/admin/products", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Valid signature but the admin account does not exist.
	ghost, err := env.auth.GenerateAdminToken(&models.AdminUser{ID: 999, Username: "ghost"})
	require.NoError(t, err)
	resp = env.request(t, http.MethodGet, "/api/admin/products", ghost, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// A consumer token never opens admin routes.
	userToken, _ := env.registerUser(t, "maria@example.com")
	resp = env.request(t, http.MethodGet, "/api/admin/products", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The real thing works.
	resp = env.request(t, http.MethodGet, "/api/admin/products", env.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminProductLifecycle(t *testing.T) {
	env := setupApp(t)
	token := env.adminToken(t)

	// Create.
	resp := env.request(t, http.MethodPost, "/api/admin/products", token, fiber.Map{
		"name":        "Perfume Floral",
		"description": "Notas de jasmim",
		"price":       129.90,
		"category_id": 1,
		"stock":       15,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)

	// The admin list resolves the category name.
	resp = env.request(t, http.MethodGet, "/api/admin/products", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adminList []models.AdminProduct
	decodeJSON(t, resp, &adminList)
	found := false
	for _, p := range adminList {
		if p.ID == created.ID {
			found = true
			assert.Equal(t, "Maquiagem", p.CategoryName)
		}
	}
	require.True(t, found)

	// Update.
	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", created.ID), token, fiber.Map{
		"name":        "Perfume Floral 50ml",
		"price":       119.90,
		"category_id": 2,
		"stock":       10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/admin/products/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Perfume Floral 50ml", updated.Name)
	assert.Equal(t, uint(2), updated.CategoryID)
	assert.InDelta(t, 119.90, updated.Price, 0.001)
	assert.Equal(t, models.StatusActive, updated.Status, "edits without a status keep the product live")

	// Delete retires the product but keeps the row.
	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/admin/products/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var retired models.Product
	decodeJSON(t, resp, &retired)
	assert.Equal(t, models.StatusInactive, retired.Status)

	resp = env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.StorefrontProduct
	decodeJSON(t, resp, &public)
	for _, p := range public {
		assert.NotEqual(t, created.ID, p.ID)
	}

	// Unknown id paths.
	resp = env.request(t, http.MethodGet, "/api/admin/products/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminCreateProductUnknownCategory(t *testing.T) {
	env := setupApp(t)

	resp := env.request(t, http.MethodPost, "/api/admin/products", env.adminToken(t), fiber.Map{
		"name":        "Perfume",
		"price":       99.90,
		"category_id": 42,
		"stock":       1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "category 42 does not exist", body["message"])
}

func TestAdminCategoryLifecycle(t *testing.T) {
	env := setupApp(t)
	token := env.adminToken(t)

	resp := env.request(t, http.MethodPost, "/api/admin/categories", token, fiber.Map{
		"name":        "Unhas",
		"description": "Esmaltes e acessórios",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Category
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Gone from the storefront filter, still visible to the admin.
	resp = env.request(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.Category
	decodeJSON(t, resp, &public)
	for _, c := range public {
		assert.NotEqual(t, created.ID, c.ID)
	}

	resp = env.request(t, http.MethodGet, "/api/admin/categories", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Category
	decodeJSON(t, resp, &all)
	found := false
	for _, c := range all {
		if c.ID == created.ID {
			found = true
			assert.Equal(t, models.StatusInactive, c.Status)
		}
	}
	assert.True(t, found)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/admin/categories/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single models.Category
	decodeJSON(t, resp, &single)
	assert.Equal(t, models.StatusInactive, single.Status)

	resp = env.request(t, http.MethodGet, "/api/admin/categories/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCartEndpoints(t *testing.T) {
	env := setupApp(t)
	token, userID := env.registerUser(t, "maria@example.com")

	// Cart routes require a token.
	resp := env.request(t, http.MethodPost, "/api/users/cart", "", fiber.Map{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Save: duplicates merge, non-positive quantities are dropped.
	resp = env.request(t, http.MethodPost, "/api/users/cart", token, fiber.Map{
		"items": []fiber.Map{
			{"product_id": 1, "quantity": 2},
			{"product_id": 1, "quantity": 1},
			{"product_id": 2, "quantity": 0},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d/cart", userID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart struct {
		Items []models.CartLine `json:"items"`
	}
	decodeJSON(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(1), cart.Items[0].ProductID)
	assert.Equal(t, "Batom Matte", cart.Items[0].Name)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 3*29.90, cart.Items[0].Subtotal, 0.001)

	// Unknown products are rejected.
	resp = env.request(t, http.MethodPost, "/api/users/cart", token, fiber.Map{
		"items": []fiber.Map{{"product_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Reading someone else's cart is forbidden.
	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d/cart", userID+1), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestWhatsappCheckoutFlow(t *testing.T) {
	env := setupApp(t)

	// Checkout is public: guests order too.
	resp := env.request(t, http.MethodPost, "/api/orders/whatsapp", "", fiber.Map{
		"customer_name": "Maria Silva",
		"items": []fiber.Map{
			{"product_id": 1, "quantity": 2},
			{"product_id": 2, "quantity": 1},
		},
		"message": "Entregar à tarde",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result services.CheckoutResult
	decodeJSON(t, resp, &result)
	require.NotZero(t, result.OrderID)
	assert.InDelta(t, 2*29.90+24.50, result.TotalAmount, 0.001)
	assert.Contains(t, result.WhatsappURL, "https://wa.me/559391445597?text=")

	token := env.adminToken(t)

	// The admin panel sees the order with its snapshots and note.
	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/admin/orders/%d", result.OrderID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Order    models.Order          `json:"order"`
		Whatsapp *models.WhatsappOrder `json:"whatsapp"`
	}
	decodeJSON(t, resp, &detail)
	assert.Equal(t, "Maria Silva", detail.Order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, detail.Order.Status)
	require.Len(t, detail.Order.Items, 2)
	require.NotNil(t, detail.Whatsapp)
	assert.Equal(t, "Entregar à tarde", detail.Whatsapp.CustomerMessage)

	var snapshotTotal float64
	for _, item := range detail.Order.Items {
		assert.NotEmpty(t, item.ProductName)
		snapshotTotal += item.UnitPrice * float64(item.Quantity)
	}
	assert.InDelta(t, detail.Order.TotalAmount, snapshotTotal, 0.001)

	// Status updates.
	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", result.OrderID), token, fiber.Map{
		"status": "confirmed",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", result.OrderID), token, fiber.Map{
		"status": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/admin/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeJSON(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusConfirmed, orders[0].Status)

	// Unknown products fail the checkout.
	resp = env.request(t, http.MethodPost, "/api/orders/whatsapp", "", fiber.Map{
		"customer_name": "Maria",
		"items":         []fiber.Map{{"product_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStatsEndpoint(t *testing.T) {
	env := setupApp(t)
	token := env.adminToken(t)

	_, _ = env.registerUser(t, "maria@example.com")
	resp := env.request(t, http.MethodPost, "/api/orders/whatsapp", "", fiber.Map{
		"customer_name": "Maria",
		"items":         []fiber.Map{{"product_id": 1, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.DashboardStats
	decodeJSON(t, resp, &stats)

	assert.Equal(t, int64(2), stats.ActiveProducts)
	assert.Equal(t, int64(2), stats.ActiveCategories)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.InDelta(t, 50*29.90+30*24.50+0*19.90, stats.StockValue, 0.001)
}

func multipartImage(t *testing.T, fieldName, fileName, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestImageUpload(t *testing.T) {
	env := setupApp(t)
	token := env.adminToken(t)

	// Upload requires the admin token.
	body, contentType := multipartImage(t, "image", "batom.png", "image/png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Valid image.
	body, contentType = multipartImage(t, "image", "batom.png", "image/png", []byte("fake png bytes"))
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var uploaded map[string]interface{}
	decodeJSON(t, resp, &uploaded)
	assert.Equal(t, true, uploaded["success"])
	assert.Contains(t, uploaded["image_url"], "/images/products/product-")

	// Non-image uploads are refused.
	body, contentType = multipartImage(t, "image", "notes.txt", "text/plain", []byte("not an image"))
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing file field.
	req = httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
