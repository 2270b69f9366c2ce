package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	extractorclient "github.com/twinlabs/persona-backend/internal/clients/extractor"
	"github.com/twinlabs/persona-backend/internal/clients/rediscache"
	graphrepos "github.com/twinlabs/persona-backend/internal/data/repos/graph"
	"github.com/twinlabs/persona-backend/internal/modules/graph/steps"
	"github.com/twinlabs/persona-backend/internal/platform/apierr"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
	"github.com/twinlabs/persona-backend/internal/platform/openai"
)

type GraphBackfillService interface {
	// RunBatch runs one controller iteration for the profile. On
	// completion the output carries final counts instead of batch stats.
	RunBatch(ctx context.Context, profileID string, batchSize int) (steps.BackfillRunOutput, error)

	// LastRun returns the cached record of the most recent invocation,
	// or nil when none is cached (or caching is disabled).
	LastRun(ctx context.Context, profileID string) (*rediscache.BackfillRecord, error)
}

type graphBackfillService struct {
	db        *gorm.DB
	log       *logger.Logger
	documents graphrepos.SourceDocumentRepo
	extractor extractorclient.Client
	stats     *rediscache.StatsCache
}

func NewGraphBackfillService(
	db *gorm.DB,
	baseLog *logger.Logger,
	documentRepo graphrepos.SourceDocumentRepo,
	extractor extractorclient.Client,
	statsCache *rediscache.StatsCache,
) GraphBackfillService {
	return &graphBackfillService{
		db:        db,
		log:       baseLog.With("service", "GraphBackfillService"),
		documents: documentRepo,
		extractor: extractor,
		stats:     statsCache,
	}
}

func (s *graphBackfillService) RunBatch(ctx context.Context, profileID string, batchSize int) (steps.BackfillRunOutput, error) {
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return steps.BackfillRunOutput{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument,
			fmt.Errorf("invalid profile_id: %w", err))
	}

	out, err := steps.BackfillRun(ctx, steps.BackfillRunDeps{
		DB:        s.db,
		Log:       s.log,
		Documents: s.documents,
		Extractor: s.extractor,
	}, steps.BackfillRunInput{ProfileID: pid, BatchSize: batchSize})
	if err != nil {
		return steps.BackfillRunOutput{}, err
	}

	s.cacheResult(ctx, profileID, out)
	return out, nil
}

func (s *graphBackfillService) cacheResult(ctx context.Context, profileID string, out steps.BackfillRunOutput) {
	if s.stats == nil {
		return
	}
	rec := rediscache.BackfillRecord{
		ProfileID: profileID,
		Completed: out.Completed,
		Selected:  out.Selected,
	}
	if out.Stats != nil {
		if raw, err := json.Marshal(out.Stats); err == nil {
			rec.Stats = raw
		}
	}
	if out.Counts != nil {
		if raw, err := json.Marshal(out.Counts); err == nil {
			rec.Counts = raw
		}
	}
	if err := s.stats.SetLastRun(ctx, rec); err != nil {
		s.log.Warn("Failed to cache backfill result", "profile_id", profileID, "error", err)
	}
}

func (s *graphBackfillService) LastRun(ctx context.Context, profileID string) (*rediscache.BackfillRecord, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument,
			fmt.Errorf("invalid profile_id: %w", err))
	}
	return s.stats.GetLastRun(ctx, profileID)
}

type GraphExtractService interface {
	ExtractBatch(ctx context.Context, profileID string, documentIDs []string) (steps.ExtractBatchOutput, error)
}

type graphExtractService struct {
	db        *gorm.DB
	log       *logger.Logger
	documents graphrepos.SourceDocumentRepo
	chunks    graphrepos.SourceChunkRepo
	legacy    graphrepos.LegacyRecordRepo
	nodes     graphrepos.GraphNodeRepo
	edges     graphrepos.GraphEdgeRepo
	links     graphrepos.NodeSourceLinkRepo
	ai        openai.Client
}

func NewGraphExtractService(
	db *gorm.DB,
	baseLog *logger.Logger,
	documentRepo graphrepos.SourceDocumentRepo,
	chunkRepo graphrepos.SourceChunkRepo,
	legacyRepo graphrepos.LegacyRecordRepo,
	nodeRepo graphrepos.GraphNodeRepo,
	edgeRepo graphrepos.GraphEdgeRepo,
	linkRepo graphrepos.NodeSourceLinkRepo,
	ai openai.Client,
) GraphExtractService {
	return &graphExtractService{
		db:        db,
		log:       baseLog.With("service", "GraphExtractService"),
		documents: documentRepo,
		chunks:    chunkRepo,
		legacy:    legacyRepo,
		nodes:     nodeRepo,
		edges:     edgeRepo,
		links:     linkRepo,
		ai:        ai,
	}
}

func (s *graphExtractService) ExtractBatch(ctx context.Context, profileID string, documentIDs []string) (steps.ExtractBatchOutput, error) {
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return steps.ExtractBatchOutput{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument,
			fmt.Errorf("invalid profile_id: %w", err))
	}
	if len(documentIDs) == 0 {
		return steps.ExtractBatchOutput{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument,
			fmt.Errorf("document_ids required"))
	}
	ids := make([]uuid.UUID, 0, len(documentIDs))
	for _, raw := range documentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return steps.ExtractBatchOutput{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument,
				fmt.Errorf("invalid document id %q: %w", raw, err))
		}
		ids = append(ids, id)
	}

	return steps.ExtractBatch(ctx, steps.ExtractBatchDeps{
		DB:        s.db,
		Log:       s.log,
		Documents: s.documents,
		Chunks:    s.chunks,
		Legacy:    s.legacy,
		Nodes:     s.nodes,
		Edges:     s.edges,
		Links:     s.links,
		AI:        s.ai,
	}, steps.ExtractBatchInput{ProfileID: pid, DocumentIDs: ids})
}
