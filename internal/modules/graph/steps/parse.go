package steps

// NodeCandidate and EdgeCandidate are the typed form of the model's
// response, decoded once at the LLM boundary. Nothing downstream touches
// untyped JSON.
type NodeCandidate struct {
	Name        string
	Type        string
	Description string
}

type EdgeCandidate struct {
	Source   string
	Target   string
	Relation string
}

type ParsedExtraction struct {
	Nodes []NodeCandidate
	Edges []EdgeCandidate
}

// parseExtraction decodes the model object defensively: a missing or
// malformed array is treated as empty, never as a failure. (A response
// that was not valid JSON at all never reaches this point; the client
// already rejected it.)
func parseExtraction(obj map[string]any) ParsedExtraction {
	var out ParsedExtraction
	if obj == nil {
		return out
	}

	nodesAny, _ := obj["nodes"].([]any)
	for _, na := range nodesAny {
		m, ok := na.(map[string]any)
		if !ok {
			continue
		}
		name := asString(m["name"])
		if name == "" {
			continue
		}
		out.Nodes = append(out.Nodes, NodeCandidate{
			Name:        name,
			Type:        asString(m["type"]),
			Description: asString(m["description"]),
		})
	}

	edgesAny, _ := obj["edges"].([]any)
	for _, ea := range edgesAny {
		m, ok := ea.(map[string]any)
		if !ok {
			continue
		}
		src := asString(m["source"])
		tgt := asString(m["target"])
		rel := asString(m["relation"])
		if src == "" || tgt == "" || rel == "" {
			continue
		}
		out.Edges = append(out.Edges, EdgeCandidate{Source: src, Target: tgt, Relation: rel})
	}

	return out
}
