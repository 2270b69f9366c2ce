package app

import (
	"github.com/gin-gonic/gin"

	"github.com/twinlabs/persona-backend/internal/platform/logger"
	"github.com/twinlabs/persona-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		HealthHandler:      handlers.Health,
		GraphHandler:       handlers.Graph,
		AuthMiddleware:     middleware.Auth,
		InternalMiddleware: middleware.Internal,
	})
}
