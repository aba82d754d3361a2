package bot

import "testing"

func TestWhatsAppNumberAllowed(t *testing.T) {
	if !WhatsAppNumberAllowed(AllowedWhatsAppNumbers[0]) {
		t.Error("expected listed number to be allowed")
	}
	if WhatsAppNumberAllowed("60999999999") {
		t.Error("expected unlisted number to be rejected")
	}
	if WhatsAppNumberAllowed("") {
		t.Error("expected empty number to be rejected")
	}
}

func TestTelegramUserAllowed(t *testing.T) {
	if !TelegramUserAllowed(AllowedTelegramUserIDs[0]) {
		t.Error("expected listed user ID to be allowed")
	}
	if TelegramUserAllowed(42) {
		t.Error("expected unlisted user ID to be rejected")
	}
}
