package domain

import (
	"time"

	"github.com/google/uuid"
)

// Node type vocabulary. Anything the extractor cannot map lands on
// NodeTypeConcept.
const (
	NodeTypeRitual         = "Ritual"
	NodeTypeLimitingBelief = "Limiting Belief"
	NodeTypeOutcome        = "Outcome"
	NodeTypeObstacle       = "Obstacle"
	NodeTypeMethod         = "Method"
	NodeTypeConcept        = "Concept"
	NodeTypePerson         = "Person"
	NodeTypeLocation       = "Location"
)

// NodeTypes lists the allowed GraphNode types in prompt order.
func NodeTypes() []string {
	return []string{
		NodeTypeRitual,
		NodeTypeLimitingBelief,
		NodeTypeOutcome,
		NodeTypeObstacle,
		NodeTypeMethod,
		NodeTypeConcept,
		NodeTypePerson,
		NodeTypeLocation,
	}
}

// GraphNode is a graph entity extracted from persona source text.
// Unique per (profile_id, name); re-extraction merges into the existing
// row (first writer's type/description win).
type GraphNode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_graph_nodes_profile_name" json:"profile_id"`

	Name        string `gorm:"column:name;not null;uniqueIndex:idx_graph_nodes_profile_name" json:"name"`
	Type        string `gorm:"column:type;not null" json:"type"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
