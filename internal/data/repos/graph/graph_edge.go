package graph

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type GraphEdgeRepo interface {
	// Upsert is idempotent on (source_id, target_id, relation_type).
	Upsert(dbc dbctx.Context, edge *types.GraphEdge) (bool, error)
	GetBySourceIDs(dbc dbctx.Context, sourceIDs []uuid.UUID) ([]*types.GraphEdge, error)
}

type graphEdgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGraphEdgeRepo(db *gorm.DB, baseLog *logger.Logger) GraphEdgeRepo {
	return &graphEdgeRepo{db: db, log: baseLog.With("repo", "GraphEdgeRepo")}
}

func (r *graphEdgeRepo) conn(dbc dbctx.Context) *gorm.DB {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(dbc.Ctx)
}

func (r *graphEdgeRepo) Upsert(dbc dbctx.Context, edge *types.GraphEdge) (bool, error) {
	res := r.conn(dbc).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "source_id"}, {Name: "target_id"}, {Name: "relation_type"},
		},
		DoNothing: true,
	}).Create(edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *graphEdgeRepo) GetBySourceIDs(dbc dbctx.Context, sourceIDs []uuid.UUID) ([]*types.GraphEdge, error) {
	var results []*types.GraphEdge
	if len(sourceIDs) == 0 {
		return results, nil
	}
	if err := r.conn(dbc).
		Where("source_id IN ?", sourceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
