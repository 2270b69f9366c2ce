package prompts

import (
	types "github.com/twinlabs/persona-backend/internal/domain"
)

// PersonaGraphExtractSchema forces exactly two top-level arrays: nodes and
// edges. Edges reference nodes by name; resolution happens at merge time.
func PersonaGraphExtractSchema() map[string]any {
	node := ObjectSchema(map[string]any{
		"name":        StringSchema(),
		"type":        EnumSchema(types.NodeTypes()...),
		"description": StringSchema(),
	}, []string{"name", "type", "description"})

	edge := ObjectSchema(map[string]any{
		"source":   StringSchema(),
		"target":   StringSchema(),
		"relation": StringSchema(),
	}, []string{"source", "target", "relation"})

	return ObjectSchema(map[string]any{
		"nodes": ArraySchema(node),
		"edges": ArraySchema(edge),
	}, []string{"nodes", "edges"})
}
