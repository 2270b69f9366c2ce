package prompts

type PromptName string

const (
	// PromptPersonaGraphExtract mines persona source text into typed
	// nodes and name-referenced edges.
	PromptPersonaGraphExtract PromptName = "persona_graph_extract"
)
