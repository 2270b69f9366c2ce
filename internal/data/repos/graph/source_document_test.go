package graph

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/twinlabs/persona-backend/internal/data/repos/testutil"
	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
)

func TestSourceDocumentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSourceDocumentRepo(db, testutil.Logger(t))

	profileA := uuid.New()
	profileB := uuid.New()
	now := time.Now().UTC()

	d1 := &types.SourceDocument{ID: uuid.New(), ProfileID: profileA, Title: "morning_routine.txt", Body: "The morning routine."}
	d2 := &types.SourceDocument{ID: uuid.New(), ProfileID: profileA, Title: "beliefs.txt", Body: "Core beliefs."}
	d3 := &types.SourceDocument{ID: uuid.New(), ProfileID: profileA, Title: "synced.txt", Body: "Already done.", LastGraphSyncAt: &now}
	d4 := &types.SourceDocument{ID: uuid.New(), ProfileID: profileB, Title: "other_profile.txt", Body: "Not ours."}
	if err := tx.Create([]*types.SourceDocument{d1, d2, d3, d4}).Error; err != nil {
		t.Fatalf("seed documents: %v", err)
	}

	if got, err := repo.GetByIDs(dbc, profileA, []uuid.UUID{d1.ID, d2.ID, d4.ID}); err != nil || len(got) != 2 {
		t.Fatalf("GetByIDs should scope to profile: len=%d err=%v", len(got), err)
	}
	if got, err := repo.GetByIDs(dbc, profileA, nil); err != nil || len(got) != 0 {
		t.Fatalf("GetByIDs empty ids: len=%d err=%v", len(got), err)
	}

	pending, err := repo.GetPending(dbc, profileA, 10)
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("GetPending expected 2 pending docs, got %d", len(pending))
	}
	for _, doc := range pending {
		if doc.LastGraphSyncAt != nil {
			t.Fatalf("GetPending returned synced doc %s", doc.ID)
		}
	}

	if got, err := repo.GetPending(dbc, profileA, 1); err != nil || len(got) != 1 {
		t.Fatalf("GetPending limit: len=%d err=%v", len(got), err)
	}

	at := time.Now().UTC()
	if err := repo.MarkGraphSynced(dbc, d1.ID, at); err != nil {
		t.Fatalf("MarkGraphSynced: %v", err)
	}
	pending, err = repo.GetPending(dbc, profileA, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("after MarkGraphSynced expected 1 pending, got %d err=%v", len(pending), err)
	}
	if pending[0].ID != d2.ID {
		t.Fatalf("expected only %s pending, got %s", d2.ID, pending[0].ID)
	}

	// Provenance count needs a node and a link against d1.
	node := &types.GraphNode{ID: uuid.New(), ProfileID: profileA, Name: "SDE", Type: types.NodeTypeConcept}
	nodeRepo := NewGraphNodeRepo(db, testutil.Logger(t))
	if _, err := nodeRepo.Upsert(dbc, node); err != nil {
		t.Fatalf("seed node: %v", err)
	}
	linkRepo := NewNodeSourceLinkRepo(db, testutil.Logger(t))
	if _, err := linkRepo.Upsert(dbc, &types.NodeSourceLink{ID: uuid.New(), NodeID: node.ID, SourceID: d1.ID}); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	counts, err := repo.CountsByProfile(dbc, profileA)
	if err != nil {
		t.Fatalf("CountsByProfile: %v", err)
	}
	if counts.Total != 3 || counts.Synced != 2 || counts.WithProvenance != 1 {
		t.Fatalf("CountsByProfile got %+v", counts)
	}
}
