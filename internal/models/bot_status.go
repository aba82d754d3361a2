package models

import (
	"gorm.io/gorm"
)

// StatusKeyMain is the key of the single global bot status record.
const StatusKeyMain = "main_bot_status"

// BotStatus is the global on/off switch for the bot. There is exactly one
// row, keyed by StatusKeyMain; it is lazily created as ON on first read.
type BotStatus struct {
	gorm.Model
	StatusKey string `json:"status_key" gorm:"uniqueIndex;not null"`
	IsOn      bool   `json:"is_on" gorm:"not null;default:true"`
}
