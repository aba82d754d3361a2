package bot

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/services"
	"github.com/afiqzx/botrelay-backend/internal/storage"
)

// MessageTypeText is the normalized type for plain text messages; every
// platform maps its own notion of "text" onto it in ParseInbound.
const MessageTypeText = "text"

// Inbound is one parsed incoming message, normalized across platforms.
type Inbound struct {
	// SenderID identifies the sender for the allow-list and as the
	// chat-history key (phone number or Telegram user ID).
	SenderID string
	// ChatID is where the reply goes. For WhatsApp this equals the
	// sender's number; for Telegram it is the chat ID.
	ChatID string
	// MessageID is the provider's ID of the inbound message, used for
	// reply threading where the provider supports it.
	MessageID string
	// Text is the message body; empty for non-text messages.
	Text string
	// MessageType is MessageTypeText or the provider's raw type
	// ("photo", "image", "video", "document", "location", ...).
	MessageType string
}

// Replies holds a platform's fixed reply strings.
type Replies struct {
	Greeting    string
	ClearOK     string
	ClearFailed string
	// Media maps non-text message types to their fixed reply.
	Media map[string]string
	// Unsupported is the fallback for any other message type.
	Unsupported string
}

// Platform is the per-provider surface the shared pipeline runs against.
// Implementations parse their own webhook payload, gate senders against
// their allow-list, and deliver replies through their provider API.
type Platform interface {
	Name() string
	// ParseInbound extracts the normalized message from the request. A
	// non-nil error marks the payload as unusable; its text becomes the
	// acknowledgement message and the update is dropped.
	ParseInbound(c *fiber.Ctx) (*Inbound, error)
	CheckAllowed(senderID string) bool
	// Rejection returns the notice sent to an unauthorized sender (empty
	// for a silent drop) and the acknowledgement message for the webhook.
	Rejection() (notice, ack string)
	Replies() Replies
	SendReply(in *Inbound, text string) services.SendResult
}

// Pipeline is the shared webhook orchestration: status check, parse,
// allow-list, command dispatch or generation, reply, acknowledge.
type Pipeline struct {
	store  storage.Store
	gemini *services.GeminiService
}

// NewPipeline creates the shared webhook pipeline
func NewPipeline(store storage.Store, gemini *services.GeminiService) *Pipeline {
	return &Pipeline{store: store, gemini: gemini}
}

// Handle runs one inbound webhook request through the pipeline. The
// response is always 200 with a {status, message} body; the provider's
// retry behavior keys off the status code, so nothing that happens here
// may surface as an error status.
func (p *Pipeline) Handle(c *fiber.Ctx, platform Platform) error {
	isOn, err := p.store.GetBotStatus()
	if err != nil {
		log.Printf("Error getting bot status: %v. Assuming bot is ON.", err)
	}
	if !isOn {
		log.Println("Bot is currently OFF. Ignoring incoming message.")
		return ack(c, "Bot is OFF.")
	}

	in, err := platform.ParseInbound(c)
	if err != nil {
		log.Printf("[%s] %v", platform.Name(), err)
		return ack(c, err.Error())
	}

	log.Printf("[%s] Processing message from sender ID: %s", platform.Name(), in.SenderID)

	if !platform.CheckAllowed(in.SenderID) {
		log.Printf("[%s] Message from sender NOT allowed: %s. Ignoring message.", platform.Name(), in.SenderID)
		notice, rejectionAck := platform.Rejection()
		if notice != "" {
			// The notice is a standalone message, not a threaded reply.
			noticeIn := *in
			noticeIn.MessageID = ""
			platform.SendReply(&noticeIn, notice)
		}
		return ack(c, rejectionAck)
	}

	responseText := p.dispatch(platform, in)

	result := platform.SendReply(in, responseText)
	if !result.Sent {
		log.Printf("[%s] Final response failed to send to %s. Details: %s", platform.Name(), in.ChatID, result.Detail)
	} else {
		log.Printf("[%s] Final response sent successfully to %s", platform.Name(), in.ChatID)
	}

	return ack(c, "Update processed")
}

// dispatch picks the reply for an inbound message: command, generation,
// or a fixed reply for non-text types.
func (p *Pipeline) dispatch(platform Platform, in *Inbound) string {
	r := platform.Replies()

	if in.MessageType == MessageTypeText && in.Text != "" {
		lower := strings.ToLower(in.Text)
		switch {
		case strings.HasPrefix(lower, "/start"), strings.HasPrefix(lower, "/hello"):
			return r.Greeting
		case strings.HasPrefix(lower, "/clear_chat"):
			if err := p.store.ClearHistory(in.SenderID); err != nil {
				log.Printf("[%s] Failed to clear chat history for user ID %s", platform.Name(), in.SenderID)
				return r.ClearFailed
			}
			log.Printf("[%s] Chat history cleared for user ID %s", platform.Name(), in.SenderID)
			return r.ClearOK
		default:
			return p.gemini.Generate(in.Text, AIRules, AIPersonality, in.SenderID)
		}
	}

	if reply, ok := r.Media[in.MessageType]; ok {
		log.Printf("[%s] User sent a %s message", platform.Name(), in.MessageType)
		return reply
	}

	log.Printf("[%s] User sent an unsupported message type: %s", platform.Name(), in.MessageType)
	return r.Unsupported
}

func ack(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": message,
	})
}
