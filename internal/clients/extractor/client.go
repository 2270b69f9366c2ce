package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/twinlabs/persona-backend/internal/platform/apierr"
	"github.com/twinlabs/persona-backend/internal/platform/envutil"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

// Client reaches the extractor job. The controller never talks to the LLM
// or the graph store itself; this is its only downstream.
type Client interface {
	ExtractBatch(ctx context.Context, req ExtractRequest) (*ExtractStats, error)
}

type ExtractRequest struct {
	ProfileID   string   `json:"profile_id"`
	DocumentIDs []string `json:"document_ids"`
}

type ExtractDiagnostics struct {
	Title           string `json:"title,omitempty"`
	SourceID        string `json:"source_id,omitempty"`
	TextTierUsed    string `json:"text_tier_used,omitempty"`
	TextLength      int    `json:"text_length,omitempty"`
	RawModelSnippet string `json:"raw_model_snippet,omitempty"`
}

type ExtractStats struct {
	DocumentsProcessed int `json:"documents_processed"`
	NodesCreated       int `json:"nodes_created"`
	EdgesCreated       int `json:"edges_created"`
	Errors             int `json:"errors"`
	SkippedNoText      int `json:"skipped_no_text"`
	SkippedGarbage     int `json:"skipped_garbage"`

	Diagnostics ExtractDiagnostics `json:"diagnostics"`
}

type extractEnvelope struct {
	Success bool          `json:"success"`
	Stats   *ExtractStats `json:"stats"`
}

type httpClient struct {
	log        *logger.Logger
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient builds a client from env. EXTRACTOR_BASE_URL defaults to
// loopback so a single deployment chains controller and extractor through
// its own server.
func NewHTTPClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	base := strings.TrimSpace(os.Getenv("EXTRACTOR_BASE_URL"))
	if base == "" {
		port := strings.TrimSpace(os.Getenv("PORT"))
		if port == "" {
			port = "8080"
		}
		base = "http://127.0.0.1:" + port
	}
	base = strings.TrimRight(base, "/")

	// Extraction batches can hold many LLM round trips.
	timeoutSec := envutil.Int("EXTRACTOR_TIMEOUT_SECONDS", 600)
	return &httpClient{
		log:        log.With("client", "ExtractorClient"),
		baseURL:    base,
		token:      strings.TrimSpace(os.Getenv("INTERNAL_API_TOKEN")),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *httpClient) ExtractBatch(ctx context.Context, req ExtractRequest) (*ExtractStats, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/graph/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("X-Internal-Token", c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable,
			fmt.Errorf("extractor unreachable: %w", err))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable,
			fmt.Errorf("extractor response read: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The raw body travels with the error for operator debugging.
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable,
			fmt.Errorf("extractor status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var env extractEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable,
			fmt.Errorf("extractor response decode: %w; body=%s", err, truncateBody(body)))
	}
	if env.Stats == nil {
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeDownstreamUnavailable,
			fmt.Errorf("extractor response missing stats: %s", truncateBody(body)))
	}
	return env.Stats, nil
}

func truncateBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 512 {
		return s[:512]
	}
	return s
}
