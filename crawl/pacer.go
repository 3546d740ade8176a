package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fwojciec/medcrawl"
	"golang.org/x/time/rate"
)

var _ medcrawl.Pacer = (*DomainPacer)(nil)

// DomainPacer provides per-host rate limiting using token buckets.
// Each host gets its own limiter, so pacing one site never slows another.
type DomainPacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainPacer creates a DomainPacer allowing rps requests per second to
// each host with a burst of 1. A non-positive rps disables pacing.
func NewDomainPacer(rps float64) *DomainPacer {
	return &DomainPacer{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (p *DomainPacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[host]
	if !ok {
		limit := rate.Inf
		if p.rps > 0 {
			limit = rate.Limit(p.rps)
		}
		limiter = rate.NewLimiter(limit, 1)
		p.limiters[host] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}

// Pause returns the pause before an article fetch: base plus a uniformly
// random extra of up to jitter.
func Pause(base, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return base
	}
	return base + rand.N(jitter+1)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
