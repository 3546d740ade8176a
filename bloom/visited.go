// Package bloom remembers which article URLs a crawl run has already
// visited, using a Bloom filter so memory stays flat across large key spaces.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Visited is an approximate set of URLs. A URL reported as unvisited was
// never added; a URL reported as visited may be a false positive.
type Visited struct {
	f *bloom.BloomFilter
}

// NewVisited creates a set sized for n expected URLs with the given false
// positive rate.
func NewVisited(n uint, fpRate float64) *Visited {
	return &Visited{f: bloom.NewWithEstimates(n, fpRate)}
}

// Visit records rawURL and reports whether this is its first visit.
func (v *Visited) Visit(rawURL string) bool {
	return !v.f.TestAndAddString(canonical(rawURL))
}

// Seen reports whether rawURL might have been visited.
func (v *Visited) Seen(rawURL string) bool {
	return v.f.TestString(canonical(rawURL))
}

// EstimatedCount returns the approximate number of distinct URLs visited.
func (v *Visited) EstimatedCount() uint {
	return uint(v.f.ApproximatedSize())
}

// canonical drops the fragment and lower-cases scheme and host so that
// trivially different spellings of a URL collide.
func canonical(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		if i := strings.IndexByte(rawURL, '#'); i != -1 {
			return rawURL[:i]
		}
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
