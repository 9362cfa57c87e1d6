package app

import (
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/repos"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type Repos struct {
	User           repos.UserRepo
	ScreenProgress repos.ScreenProgressRepo
	Achievement    repos.AchievementRepo
	UserStats      repos.UserStatsRepo
	UserEvent      repos.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:           repos.NewUserRepo(db, log),
		ScreenProgress: repos.NewScreenProgressRepo(db, log),
		Achievement:    repos.NewAchievementRepo(db, log),
		UserStats:      repos.NewUserStatsRepo(db, log),
		UserEvent:      repos.NewUserEventRepo(db, log),
	}
}
