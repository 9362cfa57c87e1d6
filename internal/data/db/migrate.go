package db

import (
	"gorm.io/gorm"

	types "github.com/escuelanichiboku/nichiboku-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserStats{},
		&types.ScreenProgress{},
		&types.UserAchievement{},
		&types.UserEvent{},
	)
}
