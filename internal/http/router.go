package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/escuelanichiboku/nichiboku-backend/internal/http/handlers"
	httpMW "github.com/escuelanichiboku/nichiboku-backend/internal/http/middleware"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler   *httpH.AuthHandler
	UserHandler   *httpH.UserHandler
	AwardHandler  *httpH.AwardHandler
	HealthHandler *httpH.HealthHandler

	AuthMiddleware *httpMW.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("nichiboku-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/user", cfg.UserHandler.GetMe)
		}

		if cfg.AwardHandler != nil {
			protected.GET("/awards/screens/:screenKey/mode", cfg.AwardHandler.GetAwardMode)
			protected.POST("/awards/screens/:screenKey/enter", cfg.AwardHandler.AwardOnEnter)
			protected.POST("/awards/screens/:screenKey/success", cfg.AwardHandler.AwardOnSuccess)

			protected.GET("/awards/achievements", cfg.AwardHandler.ListAchievements)
			protected.GET("/awards/achievements/:achievementId", cfg.AwardHandler.GetAchievement)
			protected.POST("/awards/achievements/:achievementId", cfg.AwardHandler.AwardAchievement)

			protected.POST("/awards/xp", cfg.AwardHandler.GrantXP)
			protected.GET("/awards/stats", cfg.AwardHandler.GetStats)
			protected.GET("/awards/events", cfg.AwardHandler.ListEvents)
			protected.GET("/awards/progress", cfg.AwardHandler.ListProgress)
		}
	}

	return r
}
