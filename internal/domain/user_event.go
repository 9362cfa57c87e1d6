package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventScreenCompleted     = "screen_completed"
	EventAchievementUnlocked = "achievement_unlocked"
	EventXPAwarded           = "xp_awarded"
)

// UserEvent is one entry in the append-only payout ledger. Rows are
// never mutated after creation; ordering per user is by created_at.
type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"not null;index" json:"type"`
	Amount    int            `gorm:"not null" json:"amount"`
	Meta      datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_event" }
