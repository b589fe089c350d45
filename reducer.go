package siteask

// Reducer strips raw HTML down to the content an Oracle needs.
type Reducer interface {
	// Reduce returns the reduced representation of html.
	// Empty input yields an empty string.
	Reduce(html string) (string, error)
}

// ReducerFunc adapts a function to the Reducer interface.
type ReducerFunc func(html string) (string, error)

// Reduce calls f(html).
func (f ReducerFunc) Reduce(html string) (string, error) {
	return f(html)
}
