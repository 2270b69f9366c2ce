package db

import (
	types "github.com/twinlabs/persona-backend/internal/domain"
)

// AutoMigrateAll keeps the graph pipeline schema current. Source tables are
// written by the external ingestion pipeline but live in the same database.
func (s *Service) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.SourceDocument{},
		&types.SourceChunk{},
		&types.LegacyRecord{},

		&types.GraphNode{},
		&types.GraphEdge{},
		&types.NodeSourceLink{},
	)
}
