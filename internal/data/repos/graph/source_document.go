package graph

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

// ProfileDocumentCounts summarizes a profile's document store for the
// backfill "nothing left to do" diagnostics.
type ProfileDocumentCounts struct {
	Total          int64 `json:"total"`
	Synced         int64 `json:"synced"`
	WithProvenance int64 `json:"with_provenance"`
}

type SourceDocumentRepo interface {
	GetByIDs(dbc dbctx.Context, profileID uuid.UUID, ids []uuid.UUID) ([]*types.SourceDocument, error)
	// GetPending returns up to limit documents never graph-processed.
	// No ordering guarantee beyond "some subset of pending documents".
	GetPending(dbc dbctx.Context, profileID uuid.UUID, limit int) ([]*types.SourceDocument, error)
	MarkGraphSynced(dbc dbctx.Context, id uuid.UUID, at time.Time) error
	CountsByProfile(dbc dbctx.Context, profileID uuid.UUID) (ProfileDocumentCounts, error)
}

type sourceDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceDocumentRepo(db *gorm.DB, baseLog *logger.Logger) SourceDocumentRepo {
	return &sourceDocumentRepo{db: db, log: baseLog.With("repo", "SourceDocumentRepo")}
}

func (r *sourceDocumentRepo) conn(dbc dbctx.Context) *gorm.DB {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(dbc.Ctx)
}

func (r *sourceDocumentRepo) GetByIDs(dbc dbctx.Context, profileID uuid.UUID, ids []uuid.UUID) ([]*types.SourceDocument, error) {
	var results []*types.SourceDocument
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.conn(dbc).
		Where("profile_id = ? AND id IN ?", profileID, ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sourceDocumentRepo) GetPending(dbc dbctx.Context, profileID uuid.UUID, limit int) ([]*types.SourceDocument, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []*types.SourceDocument
	if err := r.conn(dbc).
		Where("profile_id = ? AND last_graph_sync_at IS NULL", profileID).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sourceDocumentRepo) MarkGraphSynced(dbc dbctx.Context, id uuid.UUID, at time.Time) error {
	return r.conn(dbc).
		Model(&types.SourceDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_graph_sync_at": at,
			"updated_at":         at,
		}).Error
}

func (r *sourceDocumentRepo) CountsByProfile(dbc dbctx.Context, profileID uuid.UUID) (ProfileDocumentCounts, error) {
	var counts ProfileDocumentCounts

	if err := r.conn(dbc).
		Model(&types.SourceDocument{}).
		Where("profile_id = ?", profileID).
		Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := r.conn(dbc).
		Model(&types.SourceDocument{}).
		Where("profile_id = ? AND last_graph_sync_at IS NOT NULL", profileID).
		Count(&counts.Synced).Error; err != nil {
		return counts, err
	}
	if err := r.conn(dbc).
		Model(&types.SourceDocument{}).
		Where("profile_id = ?", profileID).
		Where("id IN (?)", r.conn(dbc).Model(&types.NodeSourceLink{}).Select("source_id")).
		Count(&counts.WithProvenance).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
