package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/bot"
	"github.com/afiqzx/botrelay-backend/internal/services"
)

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid        string `form:"MessageSid"`
	AccountSid        string `form:"AccountSid"`
	From              string `form:"From"` // WhatsApp number (whatsapp:+60123456789)
	To                string `form:"To"`   // Your Twilio number
	Body              string `form:"Body"` // Message text
	NumMedia          string `form:"NumMedia"`
	MediaContentType0 string `form:"MediaContentType0"`
	Latitude          string `form:"Latitude"`
	Longitude         string `form:"Longitude"`
}

// TwilioHandler handles Twilio WhatsApp webhook requests
type TwilioHandler struct {
	pipeline *bot.Pipeline
	twilio   *services.TwilioService
}

// NewTwilioHandler creates a new Twilio handler. twilio may be nil when
// credentials are missing; replies are then reported as not sent.
func NewTwilioHandler(pipeline *bot.Pipeline, twilio *services.TwilioService) *TwilioHandler {
	return &TwilioHandler{pipeline: pipeline, twilio: twilio}
}

// HandleWebhook processes incoming Twilio WhatsApp messages
func (h *TwilioHandler) HandleWebhook(c *fiber.Ctx) error {
	return h.pipeline.Handle(c, h)
}

func (h *TwilioHandler) Name() string { return "twilio" }

func (h *TwilioHandler) ParseInbound(c *fiber.Ctx) (*bot.Inbound, error) {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil || payload.MessageSid == "" {
		return nil, fmt.Errorf("Not a valid Twilio update.")
	}

	// From arrives as "whatsapp:+60123456789"; the allow-list uses the
	// clean form without the prefix or '+'.
	number := strings.TrimPrefix(payload.From, "whatsapp:")
	number = strings.TrimPrefix(number, "+")
	if number == "" {
		return nil, fmt.Errorf("No sender phone number found.")
	}

	in := &bot.Inbound{
		SenderID:  number,
		ChatID:    "+" + number,
		MessageID: payload.MessageSid,
	}

	switch {
	case payload.Body != "":
		in.Text = payload.Body
		in.MessageType = bot.MessageTypeText
	case payload.Latitude != "":
		in.MessageType = "location"
	case payload.NumMedia != "" && payload.NumMedia != "0":
		in.MessageType = mediaTypeFromContentType(payload.MediaContentType0)
	default:
		in.MessageType = "unsupported"
	}

	return in, nil
}

func mediaTypeFromContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "document"
	}
}

func (h *TwilioHandler) CheckAllowed(senderID string) bool {
	return bot.WhatsAppNumberAllowed(senderID)
}

// Rejection: unauthorized WhatsApp senders are dropped silently.
func (h *TwilioHandler) Rejection() (string, string) {
	return "", "Nombor tidak dibenarkan."
}

func (h *TwilioHandler) Replies() bot.Replies {
	return whatsAppReplies
}

func (h *TwilioHandler) SendReply(in *bot.Inbound, text string) services.SendResult {
	if h.twilio == nil {
		return services.SendResult{Sent: false, Detail: "Twilio not configured"}
	}
	return h.twilio.SendWhatsAppMessage(in.ChatID, text)
}
