package prompts

func RegisterAll() {
	RegisterSpec(Spec{
		Name:       PromptPersonaGraphExtract,
		Version:    1,
		SchemaName: "persona_graph_extract",
		Schema:     PersonaGraphExtractSchema,
		System: `
You are building a knowledge graph of a person's beliefs, methods, and teachings from their own source material.
Identify every Concept, Topic, and Action present in the text.
Classify each into exactly one of the allowed node types.
Relations must reference node names from your own node list or entities clearly established in the text.
Do not invent entities not grounded in the text.
Return JSON only.`,
		User: `
DOCUMENT_TITLE:
{{.DocumentTitle}}

ALLOWED_NODE_TYPES (one per line):
{{.NodeTypeList}}

DOCUMENT_TEXT:
{{.DocumentText}}

Task:
- nodes: every distinct entity worth a graph node. name is a short stable label; description is one or two grounded sentences.
- edges: directed relations between node names, with a short snake_case relation (e.g. teaches, overcomes, leads_to, part_of).
- Prefer fewer, well-grounded nodes over exhaustive noise.`,
		Validators: []Validator{
			RequireNonEmpty("DocumentText", func(in Input) string { return in.DocumentText }),
		},
	})
}
