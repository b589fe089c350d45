package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/siteask"
	"golang.org/x/time/rate"
)

var _ siteask.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host. Hosts are compared
// case-insensitively and with any "www." prefix removed, so example.com and
// WWW.example.com share a bucket. A zero DomainLimiter never delays.
type DomainLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second per host with a burst of
// one. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{rps: rps}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	bucket := d.bucket(domain)
	if bucket == nil {
		return ctx.Err()
	}
	return bucket.Wait(ctx)
}

func (d *DomainLimiter) bucket(domain string) *rate.Limiter {
	if d.rps <= 0 {
		return nil
	}
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buckets == nil {
		d.buckets = make(map[string]*rate.Limiter)
	}
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[key] = b
	}
	return b
}
