package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/afiqzx/botrelay-backend/database"
	"github.com/afiqzx/botrelay-backend/internal/bot"
	"github.com/afiqzx/botrelay-backend/internal/config"
	"github.com/afiqzx/botrelay-backend/internal/models"
	"github.com/afiqzx/botrelay-backend/internal/routes"
	"github.com/afiqzx/botrelay-backend/internal/services"
	"github.com/afiqzx/botrelay-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	cfg := config.Load()

	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - generation will fail")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("⚠️  Telegram credentials not found - Telegram replies will be limited")
	}
	if cfg.UltraMsgToken == "" || cfg.UltraMsgInstanceID == "" {
		log.Println("⚠️  UltraMsg credentials not found - WhatsApp replies will be limited")
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to database...")
		if err := database.Connect(cfg.PostgresURL); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(
			&models.BotStatus{},
			&models.ChatTurn{},
		); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
	}

	// Initialize services
	geminiService := services.NewGeminiService(cfg, store)
	telegramService := services.NewTelegramService(cfg)
	ultraMsgService := services.NewUltraMsgService(cfg)

	twilioService, err := services.NewTwilioService(cfg)
	if err != nil {
		log.Printf("⚠️  Warning: Twilio service not initialized: %v", err)
		twilioService = nil
	} else {
		log.Println("✅ Twilio service initialized")
	}

	pipeline := bot.NewPipeline(store, geminiService)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "BotRelay Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := err.Error()
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": message,
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Root endpoint with service info
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "BotRelay Backend API",
			"version": "1.0.0",
			"status":  "healthy",
			"storage": getStorageType(),
			"providers": fiber.Map{
				"telegram": cfg.TelegramBotToken != "",
				"ultramsg": cfg.UltraMsgToken != "",
				"twilio":   twilioService != nil,
			},
			"endpoints": fiber.Map{
				"health":           "/health",
				"webhook_telegram": "/webhook/telegram",
				"webhook_whatsapp": "/webhook/whatsapp",
				"webhook_twilio":   "/webhook/twilio",
				"status":           "/status",
			},
		})
	})

	routes.SetupRoutes(app, cfg, store, pipeline, telegramService, ultraMsgService, twilioService)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 BotRelay Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🤖 Gemini model: %s", cfg.GeminiModel)
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	if os.Getenv("POSTGRES_URL") != "" {
		return "PostgreSQL Database"
	}
	return "SQLite Database (local)"
}
