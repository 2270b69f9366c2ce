package prompts

// Prompt is a fully rendered prompt ready to pass into openai.GenerateJSON.
type Prompt struct {
	Name       string
	Version    int
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}
