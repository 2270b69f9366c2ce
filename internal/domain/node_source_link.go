package domain

import (
	"time"

	"github.com/google/uuid"
)

// NodeSourceLink records which document(s) evidenced a node. Many-to-many:
// one node may be observed in many documents and vice versa. Unique per
// (node_id, source_id); replays are no-ops.
type NodeSourceLink struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	NodeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_node_source_map_pair" json:"node_id"`
	Node   *GraphNode `gorm:"constraint:OnDelete:CASCADE;foreignKey:NodeID;references:ID" json:"-"`

	SourceID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_node_source_map_pair" json:"source_id"`
	Source   *SourceDocument `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourceID;references:ID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (NodeSourceLink) TableName() string { return "node_source_map" }
