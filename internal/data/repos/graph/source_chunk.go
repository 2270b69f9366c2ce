package graph

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type SourceChunkRepo interface {
	GetBySourceID(dbc dbctx.Context, sourceID uuid.UUID, limit int) ([]*types.SourceChunk, error)
}

type sourceChunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceChunkRepo(db *gorm.DB, baseLog *logger.Logger) SourceChunkRepo {
	return &sourceChunkRepo{db: db, log: baseLog.With("repo", "SourceChunkRepo")}
}

func (r *sourceChunkRepo) GetBySourceID(dbc dbctx.Context, sourceID uuid.UUID, limit int) ([]*types.SourceChunk, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	var results []*types.SourceChunk
	q := tx.WithContext(dbc.Ctx).
		Where("source_id = ?", sourceID).
		Order("position ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
