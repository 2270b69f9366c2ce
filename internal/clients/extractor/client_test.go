package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/twinlabs/persona-backend/internal/platform/apierr"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL, token string) *httpClient {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return &httpClient{
		log:        log,
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestExtractBatch_Success(t *testing.T) {
	var gotPath, gotToken string
	var gotReq ExtractRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Internal-Token")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"stats": map[string]any{
				"documents_processed": 3,
				"nodes_created":       5,
				"edges_created":       2,
				"errors":              1,
			},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "seekrit")
	stats, err := c.ExtractBatch(context.Background(), ExtractRequest{
		ProfileID:   "p1",
		DocumentIDs: []string{"d1", "d2", "d3"},
	})
	if err != nil {
		t.Fatalf("ExtractBatch: %v", err)
	}
	if gotPath != "/internal/graph/extract" {
		t.Fatalf("wrong path: %s", gotPath)
	}
	if gotToken != "seekrit" {
		t.Fatalf("internal token not forwarded")
	}
	if gotReq.ProfileID != "p1" || len(gotReq.DocumentIDs) != 3 {
		t.Fatalf("request body mangled: %+v", gotReq)
	}
	if stats.DocumentsProcessed != 3 || stats.NodesCreated != 5 || stats.EdgesCreated != 2 || stats.Errors != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestExtractBatch_DownstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "")
	_, err := c.ExtractBatch(context.Background(), ExtractRequest{ProfileID: "p1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %T", err)
	}
	if ae.Status != http.StatusBadGateway || ae.Code != apierr.CodeDownstreamUnavailable {
		t.Fatalf("unexpected apierr: %+v", ae)
	}
	// The downstream body travels with the error.
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("raw body missing from error: %v", err)
	}
}

func TestExtractBatch_Unreachable(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1", "")
	_, err := c.ExtractBatch(context.Background(), ExtractRequest{ProfileID: "p1"})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeDownstreamUnavailable {
		t.Fatalf("expected downstream_unavailable, got %v", err)
	}
}

func TestExtractBatch_MissingStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "")
	_, err := c.ExtractBatch(context.Background(), ExtractRequest{ProfileID: "p1"})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeDownstreamUnavailable {
		t.Fatalf("expected downstream_unavailable on missing stats, got %v", err)
	}
}
