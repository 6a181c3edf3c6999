package adapter

// ArtifactExtractor is the port for the external entity-extraction
// collaborator. Extract returns the evidence artifact values found in one
// message text (payment identifiers, phone numbers, links, account numbers).
// The core dedupes on the normalized value and does not care about the type.
type ArtifactExtractor interface {
	Extract(text string) []string
}
