package steps

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/twinlabs/persona-backend/internal/domain"
)

const (
	// A tier is selected outright when it yields this much text.
	usableTextMin = 50
	// Absolute floor: below this no extraction is attempted at all.
	extractableTextMin = 20

	maxChunksPerDocument = 20
	maxLegacyRecords     = 10
	maxPromptChars       = 15000

	rawSnippetMax = 240
)

// Text tier markers, surfaced in diagnostics only.
const (
	tierBody    = "body"
	tierChunks  = "chunks"
	tierLegacy  = "legacy"
	tierNone    = "none"
	tierGarbage = "skipped_garbage"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func deterministicUUID(s string) uuid.UUID {
	h := sha256.Sum256([]byte(s))
	id, err := uuid.FromBytes(h[:16])
	if err != nil {
		return uuid.New()
	}
	return id
}

// normalizeEntityName trims and collapses inner whitespace. Node identity
// is this exact string per profile; the same string also seeds the
// deterministic node ID so replayed merges converge.
func normalizeEntityName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(name), " ")
}

var nodeTypeByLower = func() map[string]string {
	m := make(map[string]string, len(types.NodeTypes()))
	for _, t := range types.NodeTypes() {
		m[strings.ToLower(t)] = t
	}
	return m
}()

// normalizeNodeType maps a model-provided type onto the fixed vocabulary;
// anything unknown or absent lands on Concept.
func normalizeNodeType(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if t, ok := nodeTypeByLower[raw]; ok {
		return t
	}
	// Common near-misses from the model.
	switch raw {
	case "limiting_belief", "limitingbelief", "belief":
		return types.NodeTypeLimitingBelief
	}
	return types.NodeTypeConcept
}

var garbageTitles = map[string]bool{
	".ds_store":   true,
	"thumbs.db":   true,
	"desktop.ini": true,
}

// isGarbageTitle flags filesystem artifacts that carry no persona content.
func isGarbageTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	if garbageTitles[t] {
		return true
	}
	if strings.HasPrefix(t, ".") || strings.HasPrefix(t, "__macosx") || strings.HasPrefix(t, "~$") {
		return true
	}
	return false
}

func joinParts(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

func rawSnippet(obj map[string]any) string {
	if obj == nil {
		return ""
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return truncate(string(b), rawSnippetMax)
}
