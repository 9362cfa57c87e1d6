package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserAchievement records a single unlock. One row per
// (user, achievement id); created on the first unlock only.
type UserAchievement struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_user_achievement,priority:1" json:"user_id"`
	AchievementID string         `gorm:"not null;uniqueIndex:ux_user_achievement,priority:2;column:achievement_id" json:"achievement_id"`
	UnlockedAt    time.Time      `gorm:"not null" json:"unlocked_at"`
	XP            int            `gorm:"not null;default:0;column:xp" json:"xp"`
	Sub           string         `gorm:"column:sub" json:"sub,omitempty"`
	Meta          datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
}

func (UserAchievement) TableName() string { return "user_achievement" }
