package app

import (
	"time"

	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/envutil"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	Port           string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	port := envutil.GetEnv("PORT", "8080", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		Port:           port,
	}
}
