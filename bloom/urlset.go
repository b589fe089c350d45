// Package bloom provides URL deduplication backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// URLSet is an exact set of URLs.
// A Bloom filter answers most negative lookups; positives are confirmed
// against an exact index so a URL is never reported as seen by mistake.
// URLSet is not safe for concurrent use.
type URLSet struct {
	filter *bloom.BloomFilter
	exact  map[string]struct{}
}

// NewURLSet creates a URLSet sized for n expected URLs with the given
// false positive rate for the filter.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{
		filter: bloom.NewWithEstimates(n, fpRate),
		exact:  make(map[string]struct{}),
	}
}

// Contains reports whether url has been added.
func (s *URLSet) Contains(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Add inserts url and reports whether it was newly added.
func (s *URLSet) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.filter.AddString(url)
	s.exact[url] = struct{}{}
	return true
}
