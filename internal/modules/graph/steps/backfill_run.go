package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gorm.io/gorm"

	extractorclient "github.com/twinlabs/persona-backend/internal/clients/extractor"
	graphrepos "github.com/twinlabs/persona-backend/internal/data/repos/graph"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

const defaultBackfillBatchSize = 10

type BackfillRunDeps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Documents graphrepos.SourceDocumentRepo
	Extractor extractorclient.Client
}

type BackfillRunInput struct {
	ProfileID uuid.UUID
	BatchSize int
}

// BackfillRunOutput reports either a dispatched batch (Stats set) or a
// completed backfill (Completed true, Counts set). Exactly one of the two
// shapes comes back on success.
type BackfillRunOutput struct {
	Completed bool
	Selected  int
	Counts    *graphrepos.ProfileDocumentCounts
	Stats     *extractorclient.ExtractStats
}

// BackfillRun selects the next slice of never-synced documents for a
// profile and hands them to the extractor. Selection happens here so the
// extractor stays a dumb executor over explicit ids.
func BackfillRun(ctx context.Context, deps BackfillRunDeps, in BackfillRunInput) (BackfillRunOutput, error) {
	var out BackfillRunOutput
	if deps.DB == nil || deps.Log == nil || deps.Documents == nil || deps.Extractor == nil {
		return out, fmt.Errorf("backfill run: missing dependencies")
	}
	if in.ProfileID == uuid.Nil {
		return out, fmt.Errorf("backfill run: profile id required")
	}
	batchSize := in.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBackfillBatchSize
	}
	log := deps.Log.With("step", "BackfillRun", "profile_id", in.ProfileID.String())

	dbc := dbctx.Context{Ctx: ctx, Tx: deps.DB}
	pending, err := deps.Documents.GetPending(dbc, in.ProfileID, batchSize)
	if err != nil {
		return out, fmt.Errorf("backfill run: select pending: %w", err)
	}

	if len(pending) == 0 {
		counts, err := deps.Documents.CountsByProfile(dbc, in.ProfileID)
		if err != nil {
			return out, fmt.Errorf("backfill run: completion counts: %w", err)
		}
		log.Info("Backfill complete",
			"total_documents", counts.Total,
			"synced_documents", counts.Synced,
			"documents_with_provenance", counts.WithProvenance)
		out.Completed = true
		out.Counts = &counts
		return out, nil
	}

	ids := make([]string, 0, len(pending))
	for _, doc := range pending {
		ids = append(ids, doc.ID.String())
	}
	log.Info("Dispatching backfill batch", "batch_size", len(ids))

	stats, err := deps.Extractor.ExtractBatch(ctx, extractorclient.ExtractRequest{
		ProfileID:   in.ProfileID.String(),
		DocumentIDs: ids,
	})
	if err != nil {
		return out, err
	}

	out.Selected = len(ids)
	out.Stats = stats
	return out, nil
}
