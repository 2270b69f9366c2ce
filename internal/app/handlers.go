package app

import (
	"github.com/twinlabs/persona-backend/internal/http/handlers"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Graph  *handlers.GraphHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Graph:  handlers.NewGraphHandler(services.GraphBackfill, services.GraphExtract),
	}
}
