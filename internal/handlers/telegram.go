package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/bot"
	"github.com/afiqzx/botrelay-backend/internal/services"
)

// TelegramUpdate represents an incoming update from the Telegram Bot API
type TelegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64 `json:"message_id"`
		From      *struct {
			ID int64 `json:"id"`
		} `json:"from"`
		Chat *struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text  string `json:"text"`
		Photo []struct {
			FileID string `json:"file_id"`
		} `json:"photo"`
		Document *struct {
			FileID   string `json:"file_id"`
			FileName string `json:"file_name"`
		} `json:"document"`
		Location *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
	} `json:"message"`
}

// TelegramHandler handles Telegram webhook requests
type TelegramHandler struct {
	pipeline *bot.Pipeline
	telegram *services.TelegramService
}

// NewTelegramHandler creates a new Telegram handler
func NewTelegramHandler(pipeline *bot.Pipeline, telegram *services.TelegramService) *TelegramHandler {
	return &TelegramHandler{pipeline: pipeline, telegram: telegram}
}

// HandleWebhook processes incoming Telegram updates
func (h *TelegramHandler) HandleWebhook(c *fiber.Ctx) error {
	return h.pipeline.Handle(c, h)
}

func (h *TelegramHandler) Name() string { return "telegram" }

// ParseInbound extracts the message from a Telegram update. The sender's
// user ID (not the chat ID) keys the allow-list and history.
func (h *TelegramHandler) ParseInbound(c *fiber.Ctx) (*bot.Inbound, error) {
	var update TelegramUpdate
	if err := c.BodyParser(&update); err != nil || update.UpdateID == 0 {
		return nil, fmt.Errorf("Not a valid Telegram update.")
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil, fmt.Errorf("No chat ID found.")
	}

	in := &bot.Inbound{
		ChatID:    strconv.FormatInt(msg.Chat.ID, 10),
		MessageID: strconv.FormatInt(msg.MessageID, 10),
	}
	if msg.From != nil {
		in.SenderID = strconv.FormatInt(msg.From.ID, 10)
	}

	switch {
	case msg.Text != "":
		in.Text = msg.Text
		in.MessageType = bot.MessageTypeText
	case len(msg.Photo) > 0:
		in.MessageType = "photo"
	case msg.Location != nil:
		in.MessageType = "location"
	case msg.Document != nil:
		in.MessageType = "document"
	default:
		in.MessageType = "unsupported"
	}

	return in, nil
}

func (h *TelegramHandler) CheckAllowed(senderID string) bool {
	userID, err := strconv.ParseInt(senderID, 10, 64)
	if err != nil {
		return false
	}
	return bot.TelegramUserAllowed(userID)
}

// Rejection: Telegram is the one platform that tells an unauthorized
// sender off, once, before dropping them.
func (h *TelegramHandler) Rejection() (string, string) {
	return "Maaf, anda tidak dibenarkan untuk berinteraksi dengan bot ini.", "Pengguna tidak dibenarkan."
}

func (h *TelegramHandler) Replies() bot.Replies {
	return bot.Replies{
		Greeting:    "Hai! Saya bot AI anda. Apa yang saya boleh bantu?",
		ClearOK:     "Sejarah chat anda dah dikosongkan. Jom start fresh.",
		ClearFailed: "Maaf, tak dapat kosongkan sejarah chat anda sekarang.",
		Media: map[string]string{
			"photo":    "Dah dapat foto you! Tapi I lagi suka kalau you cerita je apa yang I nak tahu. 😉",
			"location": "I dah tau you kat mana. 😉 Apa lagi you nak share?",
			"document": "Dah nampak dokumen you. Tapi I tak faham lagi content dia. Story mory je lah. 😎",
		},
		Unsupported: "Maaf, saya tak faham mesej jenis ni. Tolong hantar teks, foto, dokumen, atau lokasi je buat masa ni. 😉",
	}
}

func (h *TelegramHandler) SendReply(in *bot.Inbound, text string) services.SendResult {
	chatID, err := strconv.ParseInt(in.ChatID, 10, 64)
	if err != nil {
		return services.SendResult{Sent: false, Detail: "invalid chat ID: " + in.ChatID}
	}
	replyTo, _ := strconv.ParseInt(in.MessageID, 10, 64)
	return h.telegram.SendMessage(chatID, text, replyTo)
}
