package app

import (
	httpH "github.com/escuelanichiboku/nichiboku-backend/internal/http/handlers"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Award  *httpH.AwardHandler
	Health *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	return Handlers{
		Auth:   httpH.NewAuthHandler(s.Auth),
		User:   httpH.NewUserHandler(s.User),
		Award:  httpH.NewAwardHandler(log, s.Award, s.Stats),
		Health: httpH.NewHealthHandler(),
	}
}
