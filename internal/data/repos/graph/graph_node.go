package graph

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

type GraphNodeRepo interface {
	// Upsert inserts the node or leaves the existing (profile_id, name)
	// row untouched. Returns whether a row was created. The caller derives
	// node.ID deterministically from (profile_id, name), so the held ID is
	// valid either way.
	Upsert(dbc dbctx.Context, node *types.GraphNode) (bool, error)
	GetByProfileAndNames(dbc dbctx.Context, profileID uuid.UUID, names []string) ([]*types.GraphNode, error)
	GetByProfile(dbc dbctx.Context, profileID uuid.UUID) ([]*types.GraphNode, error)
}

type graphNodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGraphNodeRepo(db *gorm.DB, baseLog *logger.Logger) GraphNodeRepo {
	return &graphNodeRepo{db: db, log: baseLog.With("repo", "GraphNodeRepo")}
}

func (r *graphNodeRepo) conn(dbc dbctx.Context) *gorm.DB {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(dbc.Ctx)
}

func (r *graphNodeRepo) Upsert(dbc dbctx.Context, node *types.GraphNode) (bool, error) {
	res := r.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(node)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *graphNodeRepo) GetByProfileAndNames(dbc dbctx.Context, profileID uuid.UUID, names []string) ([]*types.GraphNode, error) {
	var results []*types.GraphNode
	if len(names) == 0 {
		return results, nil
	}
	if err := r.conn(dbc).
		Where("profile_id = ? AND name IN ?", profileID, names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *graphNodeRepo) GetByProfile(dbc dbctx.Context, profileID uuid.UUID) ([]*types.GraphNode, error) {
	var results []*types.GraphNode
	if err := r.conn(dbc).
		Where("profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
