package storage

import (
	"sync"
	"time"

	"github.com/afiqzx/botrelay-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development
type MemoryStore struct {
	history map[string][]models.ChatTurn
	status  map[string]bool

	historyMu sync.RWMutex
	statusMu  sync.RWMutex

	turnCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		history: make(map[string][]models.ChatTurn),
		status:  make(map[string]bool),
	}
}

// GetBotStatus returns the global on/off flag, initializing it to ON on
// first read.
func (m *MemoryStore) GetBotStatus() (bool, error) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	isOn, exists := m.status[models.StatusKeyMain]
	if !exists {
		m.status[models.StatusKeyMain] = true
		return true, nil
	}
	return isOn, nil
}

func (m *MemoryStore) SetBotStatus(isOn bool) error {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	m.status[models.StatusKeyMain] = isOn
	return nil
}

// ListHistory returns the user's turns, oldest first, bounded to
// HistoryLimit.
func (m *MemoryStore) ListHistory(userID string) ([]models.ChatTurn, error) {
	m.historyMu.RLock()
	defer m.historyMu.RUnlock()

	turns := m.history[userID]
	if len(turns) > HistoryLimit {
		turns = turns[len(turns)-HistoryLimit:]
	}

	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *MemoryStore) AppendHistory(userID, text, role string) error {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()

	m.turnCounter++
	turn := models.ChatTurn{
		UserID: userID,
		Role:   role,
		Text:   text,
	}
	turn.ID = m.turnCounter
	turn.CreatedAt = time.Now()

	turns := append(m.history[userID], turn)
	if len(turns) > HistoryLimit {
		turns = turns[len(turns)-HistoryLimit:]
	}
	m.history[userID] = turns
	return nil
}

func (m *MemoryStore) ClearHistory(userID string) error {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()

	delete(m.history, userID)
	return nil
}
