package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/bot"
	"github.com/afiqzx/botrelay-backend/internal/config"
	"github.com/afiqzx/botrelay-backend/internal/handlers"
	"github.com/afiqzx/botrelay-backend/internal/middleware"
	"github.com/afiqzx/botrelay-backend/internal/services"
	"github.com/afiqzx/botrelay-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, cfg *config.Config, store storage.Store, pipeline *bot.Pipeline,
	telegramService *services.TelegramService, ultraMsgService *services.UltraMsgService,
	twilioService *services.TwilioService) {

	healthHandler := handlers.NewHealthHandler("1.0.0")
	app.Get("/health", healthHandler.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	telegramHandler := handlers.NewTelegramHandler(pipeline, telegramService)
	webhooks.Post("/telegram", telegramHandler.HandleWebhook)

	ultraMsgHandler := handlers.NewUltraMsgHandler(pipeline, ultraMsgService)
	webhooks.Post("/whatsapp", ultraMsgHandler.HandleWebhook)

	// Twilio webhook - ENVIRONMENT-AWARE VALIDATION
	twilioHandler := handlers.NewTwilioHandler(pipeline, twilioService)
	if cfg.Environment == "development" {
		// Development: skip signature validation for ngrok
		webhooks.Post("/twilio", twilioHandler.HandleWebhook)
		println("⚠️  Twilio webhook validation DISABLED for development")
	} else {
		webhooks.Post("/twilio", middleware.ValidateTwilioSignature(cfg.TwilioAuthToken), twilioHandler.HandleWebhook)
	}

	// ========== ADMIN ROUTES ==========
	statusHandler := handlers.NewStatusHandler(store)
	app.Get("/status", statusHandler.HandleStatusPage)
	app.Post("/status", statusHandler.HandleStatusToggle)
}
