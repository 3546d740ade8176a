package goquery

import (
	"slices"

	"github.com/fwojciec/medcrawl"
)

var _ medcrawl.SourceResolver = (*Registry)(nil)

// Registry maps source families to source profiles and resolves the
// profile for a fetched page. It uses a SourceDetector to identify the
// family and falls back to the universal profile when the family is
// unknown or no profile is registered for it.
type Registry struct {
	detector medcrawl.SourceDetector
	fallback *medcrawl.Source
	sources  map[medcrawl.Family]*medcrawl.Source
}

// NewRegistry creates a new Registry with the given detector and fallback profile.
func NewRegistry(detector medcrawl.SourceDetector, fallback *medcrawl.Source) *Registry {
	return &Registry{
		detector: detector,
		fallback: fallback,
		sources:  make(map[medcrawl.Family]*medcrawl.Source),
	}
}

// Get returns the profile for a family, or nil if none is registered.
func (r *Registry) Get(family medcrawl.Family) *medcrawl.Source {
	return r.sources[family]
}

// Resolve detects the family of a page and returns its profile.
func (r *Registry) Resolve(body []byte, pageURL string) *medcrawl.Source {
	family := r.detector.Detect(body, pageURL)
	if src, ok := r.sources[family]; ok {
		return src
	}
	return r.fallback
}

// Register adds the profile for its family. A family registers at most one
// profile; later registrations replace earlier ones.
func (r *Registry) Register(src *medcrawl.Source) {
	r.sources[src.Family] = src
}

// List returns the registered families in sorted order.
func (r *Registry) List() []medcrawl.Family {
	families := make([]medcrawl.Family, 0, len(r.sources))
	for f := range r.sources {
		families = append(families, f)
	}
	slices.Sort(families)
	return families
}
