package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/siteask"
)

// FetchOutcome describes what happened to a fetch request.
// AlreadyVisited and Failed both mean "no content" to the traversal; they
// are kept apart for progress reporting and logs.
type FetchOutcome int

const (
	FetchOK FetchOutcome = iota
	FetchAlreadyVisited
	FetchFailed
)

func (o FetchOutcome) String() string {
	switch o {
	case FetchOK:
		return "ok"
	case FetchAlreadyVisited:
		return "visited"
	case FetchFailed:
		return "failed"
	default:
		return fmt.Sprintf("FetchOutcome(%d)", int(o))
	}
}

// FetchResult is the outcome of one PageFetcher call.
type FetchResult struct {
	URL     string
	HTML    string
	Outcome FetchOutcome

	// Err is the transport error behind a FetchFailed outcome.
	// It is informational only and never aborts the traversal.
	Err error
}

// PageFetcher fetches each URL at most once per run.
type PageFetcher struct {
	fetcher siteask.Fetcher
	limiter siteask.DomainLimiter
	visited *VisitedSet
}

// NewPageFetcher creates a PageFetcher that records visits in visited.
// The limiter may be nil.
func NewPageFetcher(fetcher siteask.Fetcher, limiter siteask.DomainLimiter, visited *VisitedSet) *PageFetcher {
	return &PageFetcher{fetcher: fetcher, limiter: limiter, visited: visited}
}

// Fetch returns the page at rawURL. A URL already in the visited set is
// not fetched again. Otherwise the URL is marked visited before the single
// network attempt, so a broken link is never retried within the run.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) *FetchResult {
	target := NormalizeURL(rawURL)
	if !f.visited.Add(target) {
		return &FetchResult{URL: target, Outcome: FetchAlreadyVisited}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, hostOf(target)); err != nil {
			return &FetchResult{URL: target, Outcome: FetchFailed, Err: err}
		}
	}

	html, err := f.fetcher.Fetch(ctx, target)
	if err != nil {
		return &FetchResult{URL: target, Outcome: FetchFailed, Err: err}
	}
	return &FetchResult{URL: target, HTML: html, Outcome: FetchOK}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
