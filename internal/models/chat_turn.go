package models

import (
	"gorm.io/gorm"
)

// Roles a chat turn can carry. Anything else found in storage is coerced
// to RoleUser before being sent upstream.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatTurn is one recorded message in a user's rolling conversation
// history. At most the 20 most recent turns are kept per user; older
// rows are trimmed on append.
type ChatTurn struct {
	gorm.Model
	UserID string `json:"user_id" gorm:"not null;index"`
	Role   string `json:"role" gorm:"not null"` // "user" or "model"
	Text   string `json:"text" gorm:"type:text;not null"`
}
