package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScreenProgress marks a screen payout for a user. The row is written
// exactly once and never updated or deleted; its existence is the
// idempotency guard for the screen's award.
type ScreenProgress struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_screen_progress_user_screen,priority:1" json:"user_id"`
	ScreenKey     string         `gorm:"not null;uniqueIndex:ux_screen_progress_user_screen,priority:2" json:"screen_key"`
	CompletedAt   time.Time      `gorm:"not null" json:"completed_at"`
	Points        int            `gorm:"not null" json:"points"`
	AchievementID string         `gorm:"column:achievement_id" json:"achievement_id,omitempty"`
	Meta          datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
}

func (ScreenProgress) TableName() string { return "screen_progress" }
