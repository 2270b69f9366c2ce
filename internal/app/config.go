package app

import (
	"github.com/twinlabs/persona-backend/internal/platform/envutil"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type Config struct {
	Port             string
	JWTSecretKey     string
	InternalAPIToken string
	RedisAddr        string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             envutil.Str("PORT", "8080"),
		JWTSecretKey:     envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		InternalAPIToken: envutil.Str("INTERNAL_API_TOKEN", ""),
		RedisAddr:        envutil.Str("REDIS_ADDR", ""),
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using default secret")
	}
	if cfg.InternalAPIToken == "" {
		log.Warn("INTERNAL_API_TOKEN not set, internal routes are unauthenticated")
	}
	return cfg
}
