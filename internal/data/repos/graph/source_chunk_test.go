package graph

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/twinlabs/persona-backend/internal/data/repos/testutil"
	types "github.com/twinlabs/persona-backend/internal/domain"
	"github.com/twinlabs/persona-backend/internal/platform/dbctx"
)

func TestSourceChunkRepoGetBySourceID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSourceChunkRepo(db, testutil.Logger(t))

	profile := uuid.New()
	doc := &types.SourceDocument{ID: uuid.New(), ProfileID: profile, Title: "chunked.txt"}
	other := &types.SourceDocument{ID: uuid.New(), ProfileID: profile, Title: "other.txt"}
	if err := tx.Create([]*types.SourceDocument{doc, other}).Error; err != nil {
		t.Fatalf("seed docs: %v", err)
	}

	// Insert out of order to prove position ordering.
	chunks := []*types.SourceChunk{
		{ID: uuid.New(), SourceID: doc.ID, Position: 2, Content: "third"},
		{ID: uuid.New(), SourceID: doc.ID, Position: 0, Content: "first"},
		{ID: uuid.New(), SourceID: doc.ID, Position: 1, Content: "second"},
		{ID: uuid.New(), SourceID: other.ID, Position: 0, Content: "elsewhere"},
	}
	if err := tx.Create(chunks).Error; err != nil {
		t.Fatalf("seed chunks: %v", err)
	}

	got, err := repo.GetBySourceID(dbc, doc.ID, 10)
	if err != nil {
		t.Fatalf("GetBySourceID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Content != want {
			t.Fatalf("position order broken at %d: got %q want %q", i, got[i].Content, want)
		}
	}

	if got, err := repo.GetBySourceID(dbc, doc.ID, 2); err != nil || len(got) != 2 {
		t.Fatalf("limit: len=%d err=%v", len(got), err)
	}
}

func TestLegacyRecordRepoGetByTitle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewLegacyRecordRepo(db, testutil.Logger(t))

	records := []*types.LegacyRecord{
		{ID: uuid.New(), Content: "by filename", Metadata: datatypes.JSON(`{"filename": "journal_day_one.txt"}`)},
		{ID: uuid.New(), Content: "by source title", Metadata: datatypes.JSON(`{"source_title": "journal_day_one.txt"}`)},
		{ID: uuid.New(), Content: "unrelated", Metadata: datatypes.JSON(`{"filename": "something_else.txt"}`)},
		{ID: uuid.New(), Content: "no metadata", Metadata: datatypes.JSON(`{}`)},
	}
	if err := tx.Create(records).Error; err != nil {
		t.Fatalf("seed legacy records: %v", err)
	}

	got, err := repo.GetByTitle(dbc, "journal_day_one.txt", 10)
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches across filename and source_title, got %d", len(got))
	}

	if got, err := repo.GetByTitle(dbc, "missing.txt", 10); err != nil || len(got) != 0 {
		t.Fatalf("no-match: len=%d err=%v", len(got), err)
	}
}
