package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/bot"
	"github.com/afiqzx/botrelay-backend/internal/services"
)

// UltraMsgUpdate represents an incoming webhook payload from UltraMsg
type UltraMsgUpdate struct {
	EventType string `json:"event_type"`
	Data      *struct {
		From string `json:"from"` // e.g. "60123456789@c.us"
		Body string `json:"body"`
		ID   string `json:"id"`
		Type string `json:"type"` // "chat", "image", "video", ...
	} `json:"data"`
}

// whatsAppReplies are shared by both WhatsApp providers.
var whatsAppReplies = bot.Replies{
	Greeting:    "Hai! Saya bot AI WhatsApp you. Apa yang saya boleh bantu?",
	ClearOK:     "Sejarah chat you dah dikosongkan. Jom start fresh.",
	ClearFailed: "Maaf, tak dapat kosongkan sejarah chat you sekarang.",
	Media: map[string]string{
		"image":    "I dah terima media/lokasi you. Tapi buat masa ni I hanya boleh reply mesej teks biasa je. Sorry tau! 😉",
		"video":    "I dah terima media/lokasi you. Tapi buat masa ni I hanya boleh reply mesej teks biasa je. Sorry tau! 😉",
		"document": "I dah terima media/lokasi you. Tapi buat masa ni I hanya boleh reply mesej teks biasa je. Sorry tau! 😉",
		"location": "I dah terima media/lokasi you. Tapi buat masa ni I hanya boleh reply mesej teks biasa je. Sorry tau! 😉",
	},
	Unsupported: "Maaf, saya tak faham mesej jenis ni. Tolong hantar teks biasa je buat masa ni. 😉",
}

// UltraMsgHandler handles UltraMsg WhatsApp webhook requests
type UltraMsgHandler struct {
	pipeline *bot.Pipeline
	ultramsg *services.UltraMsgService
}

// NewUltraMsgHandler creates a new UltraMsg handler
func NewUltraMsgHandler(pipeline *bot.Pipeline, ultramsg *services.UltraMsgService) *UltraMsgHandler {
	return &UltraMsgHandler{pipeline: pipeline, ultramsg: ultramsg}
}

// HandleWebhook processes incoming UltraMsg updates
func (h *UltraMsgHandler) HandleWebhook(c *fiber.Ctx) error {
	return h.pipeline.Handle(c, h)
}

func (h *UltraMsgHandler) Name() string { return "ultramsg" }

func (h *UltraMsgHandler) ParseInbound(c *fiber.Ctx) (*bot.Inbound, error) {
	var update UltraMsgUpdate
	if err := c.BodyParser(&update); err != nil || update.EventType == "" || update.Data == nil {
		return nil, fmt.Errorf("Not a valid UltraMsg update.")
	}

	// Strip the '@c.us' suffix to get the clean phone number.
	number, _, _ := strings.Cut(update.Data.From, "@")
	if number == "" {
		return nil, fmt.Errorf("No sender phone number found.")
	}

	in := &bot.Inbound{
		SenderID:  number,
		ChatID:    number,
		MessageID: update.Data.ID,
	}

	if update.Data.Type == "chat" && update.Data.Body != "" {
		in.Text = update.Data.Body
		in.MessageType = bot.MessageTypeText
	} else {
		in.MessageType = update.Data.Type
	}

	return in, nil
}

func (h *UltraMsgHandler) CheckAllowed(senderID string) bool {
	return bot.WhatsAppNumberAllowed(senderID)
}

// Rejection: unauthorized WhatsApp senders are dropped silently.
func (h *UltraMsgHandler) Rejection() (string, string) {
	return "", "Nombor tidak dibenarkan."
}

func (h *UltraMsgHandler) Replies() bot.Replies {
	return whatsAppReplies
}

func (h *UltraMsgHandler) SendReply(in *bot.Inbound, text string) services.SendResult {
	return h.ultramsg.SendMessage(in.ChatID, text, in.MessageID)
}
