package app

import (
	"gorm.io/gorm"

	"github.com/twinlabs/persona-backend/internal/platform/logger"
	"github.com/twinlabs/persona-backend/internal/services"
)

type Services struct {
	GraphBackfill services.GraphBackfillService
	GraphExtract  services.GraphExtractService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		GraphBackfill: services.NewGraphBackfillService(
			db, log, repos.SourceDocuments, clients.Extractor, clients.Stats,
		),
		GraphExtract: services.NewGraphExtractService(
			db, log,
			repos.SourceDocuments, repos.SourceChunks, repos.LegacyRecords,
			repos.GraphNodes, repos.GraphEdges, repos.NodeSourceLinks,
			clients.AI,
		),
	}
}
