package steps

import "testing"

func TestParseExtraction(t *testing.T) {
	obj := map[string]any{
		"nodes": []any{
			map[string]any{"name": "SDE", "type": "Ritual", "description": "A practice."},
			map[string]any{"name": "", "type": "Concept"},
			map[string]any{"type": "Concept"},
			"not an object",
		},
		"edges": []any{
			map[string]any{"source": "Mitesh", "target": "SDE", "relation": "teaches"},
			map[string]any{"source": "Mitesh", "target": "SDE", "relation": ""},
			map[string]any{"source": "", "target": "SDE", "relation": "teaches"},
			42,
		},
	}

	got := parseExtraction(obj)
	if len(got.Nodes) != 1 {
		t.Fatalf("expected 1 valid node, got %d", len(got.Nodes))
	}
	if got.Nodes[0].Name != "SDE" || got.Nodes[0].Type != "Ritual" {
		t.Fatalf("unexpected node: %+v", got.Nodes[0])
	}
	if len(got.Edges) != 1 {
		t.Fatalf("expected 1 valid edge, got %d", len(got.Edges))
	}
	if got.Edges[0].Relation != "teaches" {
		t.Fatalf("unexpected edge: %+v", got.Edges[0])
	}
}

func TestParseExtraction_MissingArrays(t *testing.T) {
	got := parseExtraction(map[string]any{})
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Fatalf("missing arrays should decode to empty, got %+v", got)
	}
	got = parseExtraction(nil)
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Fatalf("nil object should decode to empty, got %+v", got)
	}
	got = parseExtraction(map[string]any{"nodes": "oops", "edges": map[string]any{}})
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Fatalf("malformed arrays should decode to empty, got %+v", got)
	}
}
