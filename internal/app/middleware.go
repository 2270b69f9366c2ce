package app

import (
	"github.com/twinlabs/persona-backend/internal/http/middleware"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type Middleware struct {
	Auth     *middleware.AuthMiddleware
	Internal *middleware.InternalAuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:     middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
		Internal: middleware.NewInternalAuthMiddleware(log, cfg.InternalAPIToken),
	}
}
