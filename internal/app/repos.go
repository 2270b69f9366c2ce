package app

import (
	"gorm.io/gorm"

	graphrepos "github.com/twinlabs/persona-backend/internal/data/repos/graph"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type Repos struct {
	SourceDocuments graphrepos.SourceDocumentRepo
	SourceChunks    graphrepos.SourceChunkRepo
	LegacyRecords   graphrepos.LegacyRecordRepo
	GraphNodes      graphrepos.GraphNodeRepo
	GraphEdges      graphrepos.GraphEdgeRepo
	NodeSourceLinks graphrepos.NodeSourceLinkRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		SourceDocuments: graphrepos.NewSourceDocumentRepo(db, log),
		SourceChunks:    graphrepos.NewSourceChunkRepo(db, log),
		LegacyRecords:   graphrepos.NewLegacyRecordRepo(db, log),
		GraphNodes:      graphrepos.NewGraphNodeRepo(db, log),
		GraphEdges:      graphrepos.NewGraphEdgeRepo(db, log),
		NodeSourceLinks: graphrepos.NewNodeSourceLinkRepo(db, log),
	}
}
