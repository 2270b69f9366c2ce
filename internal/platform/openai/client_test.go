package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL string) *client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	temp := 0.2
	return &client{
		log:         log,
		baseURL:     baseURL,
		apiKey:      "test-key",
		model:       "test-model",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		maxRetries:  0,
		temperature: &temp,
	}
}

func TestGenerateJSON_RequestShape(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"output": []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "output_text", "text": `{"ok":true}`},
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	obj, err := c.GenerateJSON(context.Background(), "sys", "usr", "test_schema", map[string]any{"type": "object"})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if obj["ok"] != true {
		t.Fatalf("unexpected object: %v", obj)
	}

	text, ok := gotBody["text"].(map[string]any)
	if !ok {
		t.Fatalf("request missing text block: %v", gotBody)
	}
	format, ok := text["format"].(map[string]any)
	if !ok {
		t.Fatalf("text block missing format: %v", text)
	}
	if format["type"] != "json_schema" {
		t.Errorf("format type = %v, want json_schema", format["type"])
	}
	if format["name"] != "test_schema" {
		t.Errorf("format name = %v, want test_schema", format["name"])
	}
	if format["strict"] != true {
		t.Errorf("format strict = %v, want true", format["strict"])
	}
	if gotBody["temperature"] != 0.2 {
		t.Errorf("temperature = %v, want 0.2", gotBody["temperature"])
	}
}

func TestGenerateJSON_RequiresSchema(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1")
	if _, err := c.GenerateJSON(context.Background(), "sys", "usr", "", map[string]any{"type": "object"}); err == nil {
		t.Fatal("expected error for empty schema name")
	}
	if _, err := c.GenerateJSON(context.Background(), "sys", "usr", "name", nil); err == nil {
		t.Fatal("expected error for nil schema")
	}
}
