package storage

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afiqzx/botrelay-backend/internal/models"
)

// DatabaseStore persists bot status and chat history via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// GetBotStatus reads the global on/off flag. If no record exists yet it
// inserts one with IsOn=true; the insert uses ON CONFLICT DO NOTHING so
// two racing initializers still end up with a single record. On any
// database error the bot is reported as ON (fail-open) alongside the
// error.
func (s *DatabaseStore) GetBotStatus() (bool, error) {
	var status models.BotStatus
	err := s.db.Where("status_key = ?", models.StatusKeyMain).First(&status).Error
	if err == nil {
		return status.IsOn, nil
	}

	if err == gorm.ErrRecordNotFound {
		init := models.BotStatus{StatusKey: models.StatusKeyMain, IsOn: true}
		createErr := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "status_key"}},
			DoNothing: true,
		}).Create(&init).Error
		if createErr != nil {
			log.Printf("Failed to initialize bot status: %v", createErr)
			return true, createErr
		}
		log.Println("Bot status initialized to ON")
		return true, nil
	}

	log.Printf("Failed to read bot status: %v. Defaulting to ON.", err)
	return true, err
}

// SetBotStatus updates the global on/off flag, creating the record if it
// does not exist yet.
func (s *DatabaseStore) SetBotStatus(isOn bool) error {
	res := s.db.Model(&models.BotStatus{}).
		Where("status_key = ?", models.StatusKeyMain).
		Update("is_on", isOn)
	if res.Error != nil {
		log.Printf("Failed to set bot status: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		init := models.BotStatus{StatusKey: models.StatusKeyMain, IsOn: isOn}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "status_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_on": isOn}),
		}).Create(&init).Error; err != nil {
			log.Printf("Failed to set bot status: %v", err)
			return err
		}
	}
	return nil
}

// ListHistory returns the most recent turns for a user, oldest first,
// bounded to HistoryLimit.
func (s *DatabaseStore) ListHistory(userID string) ([]models.ChatTurn, error) {
	var turns []models.ChatTurn
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(HistoryLimit).
		Find(&turns).Error
	if err != nil {
		log.Printf("Failed to load chat history for %s: %v", userID, err)
		return nil, err
	}

	// Query returns newest first; flip to chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// AppendHistory records one turn and trims the user's history back to
// HistoryLimit, oldest rows first.
func (s *DatabaseStore) AppendHistory(userID, text, role string) error {
	turn := models.ChatTurn{UserID: userID, Role: role, Text: text}
	if err := s.db.Create(&turn).Error; err != nil {
		log.Printf("Failed to add message to history for %s: %v", userID, err)
		return err
	}

	// Sliding window: drop everything older than the newest HistoryLimit
	// rows. A concurrent append may race this; last write wins, which is
	// fine for advisory conversation context.
	var keep []uint
	if err := s.db.Model(&models.ChatTurn{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(HistoryLimit).
		Pluck("id", &keep).Error; err != nil {
		log.Printf("Failed to trim chat history for %s: %v", userID, err)
		return nil // the append itself succeeded
	}
	if err := s.db.Unscoped().
		Where("user_id = ? AND id NOT IN ?", userID, keep).
		Delete(&models.ChatTurn{}).Error; err != nil {
		log.Printf("Failed to trim chat history for %s: %v", userID, err)
	}
	return nil
}

// ClearHistory deletes all stored turns for a user.
func (s *DatabaseStore) ClearHistory(userID string) error {
	err := s.db.Unscoped().Where("user_id = ?", userID).Delete(&models.ChatTurn{}).Error
	if err != nil {
		log.Printf("Failed to clear chat history for %s: %v", userID, err)
		return err
	}
	log.Printf("Chat history cleared for user ID %s", userID)
	return nil
}
