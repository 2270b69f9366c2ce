package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	extractorclient "github.com/twinlabs/persona-backend/internal/clients/extractor"
	"github.com/twinlabs/persona-backend/internal/clients/rediscache"
	graphrepos "github.com/twinlabs/persona-backend/internal/data/repos/graph"
	"github.com/twinlabs/persona-backend/internal/modules/graph/steps"
	"github.com/twinlabs/persona-backend/internal/platform/apierr"
)

type stubBackfill struct {
	out     steps.BackfillRunOutput
	lastRun *rediscache.BackfillRecord
	err     error
}

func (s *stubBackfill) RunBatch(ctx context.Context, profileID string, batchSize int) (steps.BackfillRunOutput, error) {
	if s.err != nil {
		return steps.BackfillRunOutput{}, s.err
	}
	return s.out, nil
}

func (s *stubBackfill) LastRun(ctx context.Context, profileID string) (*rediscache.BackfillRecord, error) {
	return s.lastRun, s.err
}

type stubExtract struct {
	out steps.ExtractBatchOutput
	err error
}

func (s *stubExtract) ExtractBatch(ctx context.Context, profileID string, documentIDs []string) (steps.ExtractBatchOutput, error) {
	if s.err != nil {
		return steps.ExtractBatchOutput{}, s.err
	}
	return s.out, nil
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func router(h *GraphHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/graph/backfill", h.RunBackfill)
	r.GET("/api/graph/backfill/last", h.LastBackfill)
	r.POST("/internal/graph/extract", h.ExtractBatch)
	return r
}

func TestRunBackfill_Dispatched(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{out: steps.BackfillRunOutput{
		Selected: 4,
		Stats:    &extractorclient.ExtractStats{DocumentsProcessed: 4, NodesCreated: 7},
	}}, &stubExtract{})

	w := do(router(h), http.MethodPost, "/api/graph/backfill", `{"profile_id":"p1","batch_size":4}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool `json:"success"`
		Completed bool `json:"completed"`
		Selected  int  `json:"selected"`
		Stats     *extractorclient.ExtractStats
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Completed || resp.Selected != 4 || resp.Stats == nil || resp.Stats.NodesCreated != 7 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestRunBackfill_Completed(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{out: steps.BackfillRunOutput{
		Completed: true,
		Counts:    &graphrepos.ProfileDocumentCounts{Total: 12, Synced: 12, WithProvenance: 9},
	}}, &stubExtract{})

	w := do(router(h), http.MethodPost, "/api/graph/backfill", `{"profile_id":"p1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Completed bool `json:"completed"`
		Counts    *graphrepos.ProfileDocumentCounts
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Completed || resp.Counts == nil || resp.Counts.Total != 12 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestRunBackfill_DownstreamErrorMapped(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{
		err: apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable, fmt.Errorf("extractor status 500: boom")),
	}, &stubExtract{})

	w := do(router(h), http.MethodPost, "/api/graph/backfill", `{"profile_id":"p1"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "downstream_unavailable") || !strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("error envelope missing detail: %s", w.Body.String())
	}
}

func TestRunBackfill_BadJSON(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{}, &stubExtract{})
	w := do(router(h), http.MethodPost, "/api/graph/backfill", `{`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestLastBackfill(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{lastRun: &rediscache.BackfillRecord{ProfileID: "p1", Completed: true}}, &stubExtract{})
	w := do(router(h), http.MethodGet, "/api/graph/backfill/last?profile_id=p1", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"last_run"`) {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	h = NewGraphHandler(&stubBackfill{}, &stubExtract{})
	w = do(router(h), http.MethodGet, "/api/graph/backfill/last?profile_id=p1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing record should 404, got %d", w.Code)
	}
}

func TestExtractBatchHandler(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{}, &stubExtract{out: steps.ExtractBatchOutput{
		DocumentsProcessed: 2,
		NodesCreated:       3,
	}})

	w := do(router(h), http.MethodPost, "/internal/graph/extract", `{"profile_id":"p1","document_ids":["d1","d2"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Stats   struct {
			DocumentsProcessed int `json:"documents_processed"`
			NodesCreated       int `json:"nodes_created"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Stats.DocumentsProcessed != 2 || resp.Stats.NodesCreated != 3 {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestExtractBatchHandler_InvalidArgument(t *testing.T) {
	h := NewGraphHandler(&stubBackfill{}, &stubExtract{
		err: apierr.New(http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid document id")),
	})
	w := do(router(h), http.MethodPost, "/internal/graph/extract", `{"profile_id":"p1","document_ids":["zzz"]}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid_argument") {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}
