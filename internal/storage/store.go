package storage

import (
	"github.com/afiqzx/botrelay-backend/internal/models"
)

// HistoryLimit is the sliding-window size of per-user chat history.
// Appending beyond it drops the oldest turns.
const HistoryLimit = 20

// Store defines the interface for storage operations.
//
// All methods are best-effort: callers treat a GetBotStatus error as
// "bot is ON" (fail-open), a ListHistory error as empty history, and
// Append/Clear errors as a soft failure to report, never a hard stop.
type Store interface {
	// Bot status operations
	GetBotStatus() (bool, error)
	SetBotStatus(isOn bool) error

	// Chat history operations
	ListHistory(userID string) ([]models.ChatTurn, error)
	AppendHistory(userID, text, role string) error
	ClearHistory(userID string) error
}
