package siteask

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations perform exactly one retrieval attempt per call.
type Fetcher interface {
	// Fetch retrieves the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
