package repos

import (
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/progress"
	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos/user"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo

type ScreenProgressRepo = progress.ScreenProgressRepo
type AchievementRepo = progress.AchievementRepo
type UserStatsRepo = progress.UserStatsRepo
type UserEventRepo = progress.UserEventRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewScreenProgressRepo(db *gorm.DB, log *logger.Logger) ScreenProgressRepo {
	return progress.NewScreenProgressRepo(db, log)
}

func NewAchievementRepo(db *gorm.DB, log *logger.Logger) AchievementRepo {
	return progress.NewAchievementRepo(db, log)
}

func NewUserStatsRepo(db *gorm.DB, log *logger.Logger) UserStatsRepo {
	return progress.NewUserStatsRepo(db, log)
}

func NewUserEventRepo(db *gorm.DB, log *logger.Logger) UserEventRepo {
	return progress.NewUserEventRepo(db, log)
}
