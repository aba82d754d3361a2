package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/afiqzx/botrelay-backend/internal/config"
)

// markdownV2Escaper escapes the characters Telegram's MarkdownV2 parse
// mode treats as markup.
var markdownV2Escaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

// EscapeMarkdownV2 escapes literal text for Telegram's MarkdownV2 mode.
func EscapeMarkdownV2(text string) string {
	return markdownV2Escaper.Replace(text)
}

// TelegramService sends messages via the Telegram Bot API
type TelegramService struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewTelegramService creates a new Telegram service instance
func NewTelegramService(cfg *config.Config) *TelegramService {
	return &TelegramService{
		token:   cfg.TelegramBotToken,
		baseURL: cfg.TelegramBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type telegramSendRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	ReplyToMessageID      int64  `json:"reply_to_message_id,omitempty"`
}

type telegramSendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage sends a MarkdownV2 message to a chat, optionally as a reply
// to an earlier message. Network failures come back as Sent=false.
func (t *TelegramService) SendMessage(chatID int64, text string, replyToMessageID int64) SendResult {
	log.Printf("Sending Telegram message to chat ID %d. Text: '%s'", chatID, text)

	payload := telegramSendRequest{
		ChatID:                chatID,
		Text:                  EscapeMarkdownV2(text),
		ParseMode:             "MarkdownV2",
		DisableWebPagePreview: true,
		ReplyToMessageID:      replyToMessageID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Sent: false, Detail: err.Error()}
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Telegram API request failed: %v", err)
		return SendResult{Sent: false, Detail: fmt.Sprintf("Network error: %v", err)}
	}
	defer resp.Body.Close()

	var data telegramSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Telegram API response not parseable: %v", err)
		return SendResult{Sent: false, Detail: err.Error()}
	}

	if !data.OK {
		log.Printf("Failed to send Telegram message to chat ID %d. Details: %s", chatID, data.Description)
		return SendResult{Sent: false, Detail: data.Description}
	}

	log.Printf("Telegram message sent successfully to chat ID %d", chatID)
	return SendResult{Sent: true}
}
