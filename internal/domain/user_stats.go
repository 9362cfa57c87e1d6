package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultWeeklyGoal = 350

// UserStats is the per-user aggregate. It is only ever mutated through
// atomic increment statements, never read-modify-write; the event
// ledger is the audit trail, this row is the balance.
type UserStats struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Points          int       `gorm:"not null;default:0" json:"points"`
	WeeklyProgress  int       `gorm:"not null;default:0" json:"weekly_progress"`
	WeeklyGoal      int       `gorm:"not null;default:350" json:"weekly_goal"`
	StreakCount     int       `gorm:"not null;default:0" json:"streak_count"`
	StreakUpdatedOn string    `gorm:"column:streak_updated_on" json:"streak_updated_on"` // YYYY-MM-DD
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (UserStats) TableName() string { return "user_stats" }
