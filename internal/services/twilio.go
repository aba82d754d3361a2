package services

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/afiqzx/botrelay-backend/internal/config"
)

// TwilioService sends WhatsApp messages via Twilio
type TwilioService struct {
	client *twilio.RestClient
	from   string // Format: "whatsapp:+14155238886"
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(cfg *config.Config) (*TwilioService, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioWhatsAppFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioService{
		client: client,
		from:   cfg.TwilioWhatsAppFrom,
	}, nil
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio. Errors from the
// SDK are folded into Sent=false like the other providers.
func (t *TwilioService) SendWhatsAppMessage(to string, message string) SendResult {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", to))
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message: %v", err)
		return SendResult{Sent: false, Detail: err.Error()}
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		detail := fmt.Sprintf("twilio error %d", *resp.ErrorCode)
		if resp.ErrorMessage != nil {
			detail = fmt.Sprintf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
		}
		log.Printf("❌ %s", detail)
		return SendResult{Sent: false, Detail: detail}
	}

	if resp.Sid != nil {
		log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	}
	return SendResult{Sent: true}
}
