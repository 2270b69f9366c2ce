package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LegacyRecord is a row in the pre-migration content store. It has no
// foreign key to SourceDocument; the only join is title equality against
// metadata.filename / metadata.source_title. Used as the last text tier.
type LegacyRecord struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Content  string         `gorm:"column:content;type:text" json:"content"`
	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
