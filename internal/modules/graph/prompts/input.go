package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Document under extraction
	DocumentTitle string
	DocumentText  string
	// Node type vocabulary, one per line
	NodeTypeList string
}
