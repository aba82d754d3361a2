package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/afiqzx/botrelay-backend/internal/config"
)

// UltraMsgService sends WhatsApp messages via the UltraMsg HTTP API
type UltraMsgService struct {
	token      string
	instanceID string
	baseURL    string
	client     *http.Client
}

// NewUltraMsgService creates a new UltraMsg service instance
func NewUltraMsgService(cfg *config.Config) *UltraMsgService {
	return &UltraMsgService{
		token:      cfg.UltraMsgToken,
		instanceID: cfg.UltraMsgInstanceID,
		baseURL:    cfg.UltraMsgBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// UltraMsg replies with sent as the string "true" or "false".
type ultraMsgResponse struct {
	Sent  string          `json:"sent"`
	ID    json.RawMessage `json:"id"`
	Error json.RawMessage `json:"error"`
}

// SendMessage sends a plain text WhatsApp message, optionally quoting an
// earlier message. WhatsApp needs no escaping; *bold* and _italic_ pass
// through as-is.
func (u *UltraMsgService) SendMessage(toPhoneNumber, text, replyToMessageID string) SendResult {
	log.Printf("Sending UltraMsg message to: %s. Text: '%s'", toPhoneNumber, text)

	form := url.Values{}
	form.Set("to", toPhoneNumber)
	form.Set("body", text)
	if replyToMessageID != "" {
		form.Set("replyMessageId", replyToMessageID)
	}

	endpoint := fmt.Sprintf("%s/%s/messages/chat?token=%s", u.baseURL, u.instanceID, u.token)
	resp, err := u.client.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("UltraMsg API request failed: %v", err)
		return SendResult{Sent: false, Detail: fmt.Sprintf("Network error: %v", err)}
	}
	defer resp.Body.Close()

	var data ultraMsgResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("UltraMsg API response not parseable: %v", err)
		return SendResult{Sent: false, Detail: err.Error()}
	}

	if data.Sent == "false" {
		log.Printf("Failed to send UltraMsg message to %s. Details: %s", toPhoneNumber, string(data.Error))
		return SendResult{Sent: false, Detail: string(data.Error)}
	}

	log.Printf("UltraMsg message sent successfully to %s. ID: %s", toPhoneNumber, string(data.ID))
	return SendResult{Sent: true}
}
