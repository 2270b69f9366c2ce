package graph

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type NodeSourceLinkRepo interface {
	// Upsert is idempotent on (node_id, source_id).
	Upsert(dbc dbctx.Context, link *types.NodeSourceLink) (bool, error)
	GetByNodeIDs(dbc dbctx.Context, nodeIDs []uuid.UUID) ([]*types.NodeSourceLink, error)
}

type nodeSourceLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeSourceLinkRepo(db *gorm.DB, baseLog *logger.Logger) NodeSourceLinkRepo {
	return &nodeSourceLinkRepo{db: db, log: baseLog.With("repo", "NodeSourceLinkRepo")}
}

func (r *nodeSourceLinkRepo) conn(dbc dbctx.Context) *gorm.DB {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(dbc.Ctx)
}

func (r *nodeSourceLinkRepo) Upsert(dbc dbctx.Context, link *types.NodeSourceLink) (bool, error) {
	res := r.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "node_id"}, {Name: "source_id"}},
		DoNothing: true,
	}).Create(link)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *nodeSourceLinkRepo) GetByNodeIDs(dbc dbctx.Context, nodeIDs []uuid.UUID) ([]*types.NodeSourceLink, error) {
	var results []*types.NodeSourceLink
	if len(nodeIDs) == 0 {
		return results, nil
	}
	if err := r.conn(dbc).
		Where("node_id IN ?", nodeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
