package siteask

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should already be reduced (e.g., by a Reducer).
	Convert(html string) (string, error)
}
