package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/rabbitmq"
	"pasar/pkg/storage"
)

// App bundles everything main and the tests need to run the server.
type App struct {
	Fiber *fiber.App
	Auth  *services.AuthService
	MQ    *rabbitmq.Client
}

func loadConfig() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=pasar port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_PATH", "media")
	viper.AutomaticEnv()
}

func openDatabase() (*gorm.DB, error) {
	dsn := viper.GetString("DATABASE_DSN")
	if viper.GetString("DB_DRIVER") == "sqlite" {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// NewApp wires configuration, database, storage, messaging and routes into
// a runnable application.
func NewApp() (*App, error) {
	loadConfig()

	db, err := openDatabase()
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(storage.Config{
		Driver:     viper.GetString("STORAGE_DRIVER"),
		LocalPath:  viper.GetString("STORAGE_PATH"),
		S3Bucket:   viper.GetString("S3_BUCKET"),
		S3Region:   viper.GetString("S3_REGION"),
		S3Key:      viper.GetString("S3_KEY"),
		S3Secret:   viper.GetString("S3_SECRET"),
		S3Endpoint: viper.GetString("S3_ENDPOINT"),
		S3BaseURL:  viper.GetString("S3_URL"),
	})
	if err != nil {
		return nil, err
	}

	// Messaging is optional: without a broker the shop still sells, it
	// just stops emitting order events.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("warning: RabbitMQ unavailable, order events disabled: %v", err)
			mqClient = nil
		}
	}

	// Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	productService := services.NewProductService(productRepo, orderRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, cartRepo, publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, store)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService, store)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(logger.New())

	if viper.GetString("STORAGE_DRIVER") == "local" {
		app.Static("/media", viper.GetString("STORAGE_PATH"))
	}

	apiV1 := app.Group("/api/v1")

	// Public routes
	catalogHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)

	// Routes that need a logged-in caller
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	// Vendor-only routes
	vendor := protected.Group("", middleware.VendorOnly())
	productHandler.RegisterRoutes(vendor)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return &App{Fiber: app, Auth: authService, MQ: mqClient}, nil
}

func main() {
	application, err := NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	if application.MQ != nil {
		defer application.MQ.Close()
	}

	// Consume order events so they are visible in the logs. Fulfilment,
	// inventory and mail workers would hang off this queue.
	if application.MQ != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		err := application.MQ.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Received order event %s: %s", msg.Type, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Fiber.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := application.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
