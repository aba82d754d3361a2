package config

import "os"

// Config holds all environment-provided settings. It is built once in
// main and passed by reference into services and handlers; nothing reads
// os.Getenv after startup.
type Config struct {
	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Telegram
	TelegramBotToken string
	TelegramBaseURL  string

	// UltraMsg (WhatsApp provider A)
	UltraMsgToken      string
	UltraMsgInstanceID string
	UltraMsgBaseURL    string

	// Twilio (WhatsApp provider B)
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// Storage
	PostgresURL string

	Port        string
	Environment string
}

// Load builds a Config from environment variables, applying defaults.
// Credentials are allowed to be empty here; the affected provider is
// simply reported as not configured at startup.
func Load() *Config {
	cfg := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramBaseURL:  os.Getenv("TELEGRAM_BASE_URL"),

		UltraMsgToken:      os.Getenv("ULTRAMSG_API_TOKEN"),
		UltraMsgInstanceID: os.Getenv("ULTRAMSG_INSTANCE_ID"),
		UltraMsgBaseURL:    os.Getenv("ULTRAMSG_BASE_URL"),

		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_FROM"),

		PostgresURL: os.Getenv("POSTGRES_URL"),

		Port:        os.Getenv("PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.GeminiBaseURL == "" {
		cfg.GeminiBaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.TelegramBaseURL == "" {
		cfg.TelegramBaseURL = "https://api.telegram.org"
	}
	if cfg.UltraMsgBaseURL == "" {
		cfg.UltraMsgBaseURL = "https://api.ultramsg.com"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg
}
