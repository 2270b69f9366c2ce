package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceChunk is a fragment of a document's text, stored separately by the
// ingestion pipeline (typically for retrieval indexing).
type SourceChunk struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SourceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"source_id"`
	Source   *SourceDocument `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourceID;references:ID" json:"source,omitempty"`

	Position int    `gorm:"column:position;not null" json:"position"`
	Content  string `gorm:"column:content;type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
