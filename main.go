package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"casabeleza/internal/handlers"
	"casabeleza/internal/middleware"
	"casabeleza/internal/models"
	"casabeleza/internal/repositories"
	"casabeleza/internal/services"
	"casabeleza/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=casabeleza port=5432 sslmode=disable")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("WHATSAPP_NUMBER", "559391445597")
	viper.SetDefault("UPLOAD_DIR", "public/images/products")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	uploadDir := viper.GetString("UPLOAD_DIR")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.AdminUser{},
		&models.Order{},
		&models.OrderItem{},
		&models.WhatsappOrder{},
		&models.CartItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	adminRepo := repositories.NewGORMAdminRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	statsRepo := repositories.NewGORMStatsRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, adminRepo, viper.GetString("JWT_SECRET"))
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	statsService := services.NewStatsService(statsRepo)

	var publisher services.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, productRepo, publisher, viper.GetString("WHATSAPP_NUMBER"))

	seedDefaults(db, categoryRepo, productRepo, adminRepo, authService)

	// --- Handlers ---
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	statsHandler := handlers.NewStatsHandler(statsService)
	uploadHandler := handlers.NewUploadHandler(uploadDir, "/images/products")

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // uploads are size-checked per file
	})
	app.Use(logger.New())
	app.Static("/images/products", uploadDir)

	api := app.Group("/api")

	// Public routes first: concrete matches terminate before the guarded
	// group middleware below is consulted.
	healthHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	productHandler.RegisterPublicRoutes(api)
	categoryHandler.RegisterPublicRoutes(api)
	orderHandler.RegisterPublicRoutes(api)

	userArea := api.Group("/users", middleware.UserRequired(authService))
	cartHandler.RegisterRoutes(userArea)

	adminArea := api.Group("/admin", middleware.AdminRequired(authService))
	productHandler.RegisterAdminRoutes(adminArea)
	categoryHandler.RegisterAdminRoutes(adminArea)
	orderHandler.RegisterAdminRoutes(adminArea)
	statsHandler.RegisterAdminRoutes(adminArea)
	uploadHandler.RegisterRoutes(api, middleware.AdminRequired(authService))

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects with the driver selected by DB_DRIVER. The store
// runs interchangeably against Postgres (Supabase) and MySQL; the MySQL DSN
// can also be assembled from the individual DB_* variables.
func openDatabase() (*gorm.DB, error) {
	driver := viper.GetString("DB_DRIVER")
	dsn := viper.GetString("DATABASE_DSN")

	switch driver {
	case "mysql":
		if host := viper.GetString("DB_HOST"); host != "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				viper.GetString("DB_USER"),
				viper.GetString("DB_PASSWORD"),
				host,
				viper.GetString("DB_PORT"),
				viper.GetString("DB_NAME"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}

// seedDefaults populates empty tables with the starting catalog and the
// default admin account (admin/admin123).
func seedDefaults(db *gorm.DB, categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, adminRepo repositories.AdminRepository, authService *services.AuthService) {
	var categoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []models.Category{
			{Name: "Maquiagem", Description: "Batons, bases e sombras"},
			{Name: "Cabelos", Description: "Shampoos, condicionadores e máscaras"},
			{Name: "Perfumes", Description: "Fragrâncias femininas e masculinas"},
			{Name: "Corpo e Banho", Description: "Sabonetes, hidratantes e óleos"},
			{Name: "Skincare", Description: "Cuidados faciais diários"},
		}
		for i := range categories {
			if err := categoryRepo.Create(&categories[i]); err != nil {
				log.Printf("Error seeding category %s: %v", categories[i].Name, err)
			}
		}

		products := []models.Product{
			{Name: "Batom Matte Vermelho", Description: "Longa duração, acabamento matte", Price: 29.90, CategoryID: categories[0].ID, Stock: 50},
			{Name: "Shampoo Hidratante", Description: "Para cabelos secos e danificados", Price: 24.50, CategoryID: categories[1].ID, Stock: 30},
			{Name: "Perfume Floral 50ml", Description: "Notas de jasmim e baunilha", Price: 129.90, CategoryID: categories[2].ID, Stock: 15},
			{Name: "Sabonete Artesanal de Lavanda", Description: "Feito à mão com óleos essenciais", Price: 12.00, CategoryID: categories[3].ID, Stock: 80},
			{Name: "Sérum Facial Vitamina C", Description: "Uniformiza o tom da pele", Price: 79.90, CategoryID: categories[4].ID, Stock: 25},
		}
		for i := range products {
			if err := productRepo.Create(&products[i]); err != nil {
				log.Printf("Error seeding product %s: %v", products[i].Name, err)
			}
		}
	}

	var adminCount int64
	db.Model(&models.AdminUser{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := authService.HashPassword("admin123")
		if err != nil {
			log.Printf("Error hashing default admin password: %v", err)
			return
		}
		admin := &models.AdminUser{
			Username:     "admin",
			Email:        "admin@casabeleza.com",
			PasswordHash: hash,
		}
		if err := adminRepo.Create(admin); err != nil {
			log.Printf("Error seeding admin user: %v", err)
		} else {
			log.Println("Seeded default admin user 'admin'")
		}
	}
}
