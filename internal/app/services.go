package app

import (
	"gorm.io/gorm"

	"github.com/escuelanichiboku/nichiboku-backend/internal/awards"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
	"github.com/escuelanichiboku/nichiboku-backend/internal/services"
)

type Services struct {
	Auth  services.AuthService
	User  services.UserService
	Award services.AwardService
	Stats services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	return Services{
		Auth:  services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:  services.NewUserService(db, log, r.User),
		Award: services.NewAwardService(db, log, awards.DefaultRuleSet(), awards.DefaultMilestones(), r.User, r.ScreenProgress, r.Achievement, r.UserStats, r.UserEvent),
		Stats: services.NewStatsService(db, log, r.UserStats, r.UserEvent, r.ScreenProgress, r.Achievement),
	}
}
