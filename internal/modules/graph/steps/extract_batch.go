package steps

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	graphrepos "github.com/twinlabs/persona-backend/internal/data/repos/graph"
	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/modules/graph/prompts"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
	"github.com/twinlabs/persona-backend/internal/platform/envutil"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
	"github.com/twinlabs/persona-backend/internal/platform/openai"
)

type ExtractBatchDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Documents graphrepos.SourceDocumentRepo
	Chunks    graphrepos.SourceChunkRepo
	Legacy    graphrepos.LegacyRecordRepo
	Nodes     graphrepos.GraphNodeRepo
	Edges     graphrepos.GraphEdgeRepo
	Links     graphrepos.NodeSourceLinkRepo

	AI openai.Client
}

type ExtractBatchInput struct {
	ProfileID   uuid.UUID
	DocumentIDs []uuid.UUID
}

// DocumentDiagnostics is the raw snapshot of the most recently processed
// document. Operator-facing only; nothing reads it for control flow.
type DocumentDiagnostics struct {
	Title           string `json:"title,omitempty"`
	SourceID        string `json:"source_id,omitempty"`
	TextTierUsed    string `json:"text_tier_used,omitempty"`
	TextLength      int    `json:"text_length,omitempty"`
	RawModelSnippet string `json:"raw_model_snippet,omitempty"`
}

type ExtractBatchOutput struct {
	DocumentsProcessed int `json:"documents_processed"`
	NodesCreated       int `json:"nodes_created"`
	EdgesCreated       int `json:"edges_created"`
	Errors             int `json:"errors"`
	SkippedNoText      int `json:"skipped_no_text"`
	SkippedGarbage     int `json:"skipped_garbage"`

	Diagnostics DocumentDiagnostics `json:"diagnostics"`
}

type docOutcome struct {
	err          error
	garbage      bool
	noText       bool
	nodesCreated int
	edgesCreated int
	diag         DocumentDiagnostics
}

// ExtractBatch resolves text, runs LLM extraction, and merges results into
// the graph for each document independently. Every document is stamped
// last_graph_sync_at before its attempt, so a document gets at most one
// attempt no matter how the attempt ends. Per-document failures are
// counted, never propagated; only whole-batch infrastructure failures
// return an error.
func ExtractBatch(ctx context.Context, deps ExtractBatchDeps, in ExtractBatchInput) (ExtractBatchOutput, error) {
	out := ExtractBatchOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Documents == nil || deps.Chunks == nil ||
		deps.Legacy == nil || deps.Nodes == nil || deps.Edges == nil || deps.Links == nil || deps.AI == nil {
		return out, fmt.Errorf("extract_batch: missing deps")
	}
	if in.ProfileID == uuid.Nil {
		return out, fmt.Errorf("extract_batch: missing profile_id")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(in.DocumentIDs) == 0 {
		return out, nil
	}

	docs, err := deps.Documents.GetByIDs(dbctx.Context{Ctx: ctx}, in.ProfileID, in.DocumentIDs)
	if err != nil {
		return out, fmt.Errorf("extract_batch: load documents: %w", err)
	}

	conc := envutil.Int("GRAPH_EXTRACT_CONCURRENCY", 1)
	if conc < 1 {
		conc = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(conc)

	var mu sync.Mutex
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if doc == nil || doc.ID == uuid.Nil {
				return nil
			}
			oc := processDocument(gctx, deps, in.ProfileID, doc)

			mu.Lock()
			defer mu.Unlock()
			out.DocumentsProcessed++
			out.NodesCreated += oc.nodesCreated
			out.EdgesCreated += oc.edgesCreated
			switch {
			case oc.err != nil:
				out.Errors++
				deps.Log.Warn("document extraction failed",
					"source_id", doc.ID.String(), "title", doc.Title, "error", oc.err)
			case oc.garbage:
				out.SkippedGarbage++
			case oc.noText:
				out.SkippedNoText++
			}
			out.Diagnostics = oc.diag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

func processDocument(ctx context.Context, deps ExtractBatchDeps, profileID uuid.UUID, doc *types.SourceDocument) docOutcome {
	oc := docOutcome{diag: DocumentDiagnostics{
		Title:    doc.Title,
		SourceID: doc.ID.String(),
	}}
	dbc := dbctx.Context{Ctx: ctx}

	// Stamp first, unconditionally. Whatever happens after this point, the
	// document has used its one processing attempt.
	if err := deps.Documents.MarkGraphSynced(dbc, doc.ID, time.Now().UTC()); err != nil {
		oc.err = fmt.Errorf("mark synced: %w", err)
		return oc
	}

	if isGarbageTitle(doc.Title) {
		oc.garbage = true
		oc.diag.TextTierUsed = tierGarbage
		return oc
	}

	resolved, err := resolveDocumentText(dbc, deps, doc)
	if err != nil {
		oc.err = fmt.Errorf("resolve text: %w", err)
		return oc
	}
	oc.diag.TextTierUsed = resolved.Tier
	oc.diag.TextLength = len(resolved.Text)
	if resolved.Tier == tierNone {
		oc.noText = true
		return oc
	}

	p, err := prompts.Build(prompts.PromptPersonaGraphExtract, prompts.Input{
		DocumentTitle: doc.Title,
		DocumentText:  truncate(resolved.Text, maxPromptChars),
		NodeTypeList:  strings.Join(types.NodeTypes(), "\n"),
	})
	if err != nil {
		oc.err = fmt.Errorf("build prompt: %w", err)
		return oc
	}

	obj, err := deps.AI.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	if err != nil {
		oc.err = fmt.Errorf("llm extraction: %w", err)
		oc.diag.RawModelSnippet = truncate(err.Error(), rawSnippetMax)
		return oc
	}
	oc.diag.RawModelSnippet = rawSnippet(obj)

	parsed := parseExtraction(obj)
	if err := mergeExtraction(dbc, deps, profileID, doc.ID, parsed, &oc); err != nil {
		oc.err = fmt.Errorf("graph merge: %w", err)
	}
	return oc
}

// mergeExtraction upserts nodes, provenance links, and edges. All writes
// are insert-or-no-op keyed on deterministic IDs, so overlapping runs on
// the same document converge on identical state.
func mergeExtraction(dbc dbctx.Context, deps ExtractBatchDeps, profileID uuid.UUID, sourceID uuid.UUID, parsed ParsedExtraction, oc *docOutcome) error {
	nodeIDByName := map[string]uuid.UUID{}

	for _, cand := range parsed.Nodes {
		name := normalizeEntityName(cand.Name)
		if name == "" {
			continue
		}
		if _, seen := nodeIDByName[name]; seen {
			continue
		}

		node := &types.GraphNode{
			ID:          deterministicUUID("graph_node|" + profileID.String() + "|" + name),
			ProfileID:   profileID,
			Name:        name,
			Type:        normalizeNodeType(cand.Type),
			Description: cand.Description,
		}
		created, err := deps.Nodes.Upsert(dbc, node)
		if err != nil {
			return err
		}
		if created {
			oc.nodesCreated++
		}
		nodeIDByName[name] = node.ID

		link := &types.NodeSourceLink{
			ID:       deterministicUUID("node_source|" + node.ID.String() + "|" + sourceID.String()),
			NodeID:   node.ID,
			SourceID: sourceID,
		}
		if _, err := deps.Links.Upsert(dbc, link); err != nil {
			return err
		}
	}

	// Edge endpoints may reference nodes that already exist in the graph
	// but were not part of this document's node list.
	missing := make([]string, 0, len(parsed.Edges)*2)
	seen := map[string]bool{}
	for _, e := range parsed.Edges {
		for _, raw := range []string{e.Source, e.Target} {
			name := normalizeEntityName(raw)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := nodeIDByName[name]; !ok {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		existing, err := deps.Nodes.GetByProfileAndNames(dbc, profileID, missing)
		if err != nil {
			return err
		}
		for _, n := range existing {
			if n != nil && n.ID != uuid.Nil {
				nodeIDByName[n.Name] = n.ID
			}
		}
	}

	for _, e := range parsed.Edges {
		srcID, srcOK := nodeIDByName[normalizeEntityName(e.Source)]
		tgtID, tgtOK := nodeIDByName[normalizeEntityName(e.Target)]
		if !srcOK || !tgtOK {
			// Dangling reference; dropped without error.
			continue
		}
		relation := strings.TrimSpace(e.Relation)
		if relation == "" {
			continue
		}

		edge := &types.GraphEdge{
			ID:           deterministicUUID("graph_edge|" + srcID.String() + "|" + tgtID.String() + "|" + relation),
			SourceID:     srcID,
			TargetID:     tgtID,
			RelationType: relation,
		}
		created, err := deps.Edges.Upsert(dbc, edge)
		if err != nil {
			return err
		}
		if created {
			oc.edgesCreated++
		}
	}

	return nil
}
