package app

import (
	httpx "github.com/escuelanichiboku/nichiboku-backend/internal/http"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

func wireServer(log *logger.Logger, handlers Handlers, middleware Middleware) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		Log:            log,
		AuthHandler:    handlers.Auth,
		UserHandler:    handlers.User,
		AwardHandler:   handlers.Award,
		HealthHandler:  handlers.Health,
		AuthMiddleware: middleware.Auth,
	})
}
