package graph

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type LegacyRecordRepo interface {
	// GetByTitle matches metadata.filename or metadata.source_title
	// against the document title. The legacy store has no foreign keys;
	// title equality is the only join available.
	GetByTitle(dbc dbctx.Context, title string, limit int) ([]*types.LegacyRecord, error)
}

type legacyRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLegacyRecordRepo(db *gorm.DB, baseLog *logger.Logger) LegacyRecordRepo {
	return &legacyRecordRepo{db: db, log: baseLog.With("repo", "LegacyRecordRepo")}
}

func (r *legacyRecordRepo) GetByTitle(dbc dbctx.Context, title string, limit int) ([]*types.LegacyRecord, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	if title == "" {
		return []*types.LegacyRecord{}, nil
	}
	var results []*types.LegacyRecord
	q := tx.WithContext(dbc.Ctx).
		Where(
			tx.Session(&gorm.Session{NewDB: true}).
				Where(datatypes.JSONQuery("metadata").Equals(title, "filename")).
				Or(datatypes.JSONQuery("metadata").Equals(title, "source_title")),
		)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
