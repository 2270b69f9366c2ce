package domain

import (
	"time"

	"github.com/google/uuid"
)

// GraphEdge is a directed, typed relation between two nodes. Unique per
// (source_id, target_id, relation_type); distinct relations between the
// same pair are distinct edges.
type GraphEdge struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SourceID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_graph_edges_triple" json:"source_id"`
	SourceN  *GraphNode `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourceID;references:ID" json:"-"`
	TargetID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_graph_edges_triple" json:"target_id"`
	TargetN  *GraphNode `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetID;references:ID" json:"-"`

	RelationType string `gorm:"column:relation_type;not null;uniqueIndex:idx_graph_edges_triple" json:"relation_type"`

	CreatedAt time.Time `json:"created_at"`
}
