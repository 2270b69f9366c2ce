package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceDocument is an ingested knowledge-source record. The ingestion
// pipeline writes these; the graph pipeline only reads them and stamps
// LastGraphSyncAt exactly once per processing attempt.
type SourceDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`

	Title string `gorm:"column:title;not null" json:"title"`
	Body  string `gorm:"column:body;type:text" json:"body,omitempty"`

	LastGraphSyncAt *time.Time `gorm:"column:last_graph_sync_at;index" json:"last_graph_sync_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
