package bot

// Allow-lists are compiled in deliberately: the set of people this bot
// talks to changes with a deploy, not with configuration.

// AllowedWhatsAppNumbers holds permitted WhatsApp senders in clean form,
// without '@c.us' or '+', e.g. '60123456789'.
var AllowedWhatsAppNumbers = []string{
	"601135027311",
	"601116649357",
	"601126706771",
	"60164673962",
}

// AllowedTelegramUserIDs holds permitted Telegram user IDs (user IDs,
// not chat IDs).
var AllowedTelegramUserIDs = []int64{
	5206449238,
}

// WhatsAppNumberAllowed reports whether a WhatsApp number may interact
// with the bot.
func WhatsAppNumberAllowed(number string) bool {
	for _, n := range AllowedWhatsAppNumbers {
		if n == number {
			return true
		}
	}
	return false
}

// TelegramUserAllowed reports whether a Telegram user may interact with
// the bot.
func TelegramUserAllowed(userID int64) bool {
	for _, id := range AllowedTelegramUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
