package server

import (
	"github.com/gin-gonic/gin"

	"github.com/twinlabs/persona-backend/internal/http/handlers"
	"github.com/twinlabs/persona-backend/internal/http/middleware"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler *handlers.HealthHandler
	GraphHandler  *handlers.GraphHandler

	AuthMiddleware     *middleware.AuthMiddleware
	InternalMiddleware *middleware.InternalAuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/health", cfg.HealthHandler.HealthCheck)

	// ===============
	// || Admin     ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		api.POST("/graph/backfill", cfg.GraphHandler.RunBackfill)
		api.GET("/graph/backfill/last", cfg.GraphHandler.LastBackfill)
	}

	// ===============
	// || Internal  ||
	// ===============
	internal := router.Group("/internal")
	internal.Use(cfg.InternalMiddleware.RequireToken())
	{
		internal.POST("/graph/extract", cfg.GraphHandler.ExtractBatch)
	}

	return router
}
