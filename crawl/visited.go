package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/siteask/bloom"
)

// Visited set sizing for the Bloom filter pre-check.
const (
	visitedExpectedURLs      = 1000
	visitedFalsePositiveRate = 0.01
)

// VisitedSet records the normalized URLs already fetched in a run.
// It is created with the run and never cleared.
type VisitedSet struct {
	urls *bloom.URLSet
}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: bloom.NewURLSet(visitedExpectedURLs, visitedFalsePositiveRate)}
}

// Add marks the URL visited and reports whether it was new.
func (v *VisitedSet) Add(rawURL string) bool {
	return v.urls.Add(visitKey(rawURL))
}

// NormalizeURL strips the fragment and lower-cases the scheme and host so
// that URLs naming the same resource share one visited entry.
// Unparseable input is returned trimmed.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// visitKey is the visited set entry for a URL. A host-only URL and the same
// URL with a "/" path name one page.
func visitKey(rawURL string) string {
	key := NormalizeURL(rawURL)
	u, err := url.Parse(key)
	if err != nil || u.Host == "" || u.Path != "" || u.Opaque != "" {
		return key
	}
	u.Path = "/"
	return u.String()
}
