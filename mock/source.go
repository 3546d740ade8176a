package mock

import "github.com/fwojciec/medcrawl"

var (
	_ medcrawl.SourceDetector = (*SourceDetector)(nil)
	_ medcrawl.SourceResolver = (*SourceResolver)(nil)
)

// SourceDetector is a mock implementation of medcrawl.SourceDetector.
type SourceDetector struct {
	DetectFn func(body []byte, pageURL string) medcrawl.Family
}

func (d *SourceDetector) Detect(body []byte, pageURL string) medcrawl.Family {
	return d.DetectFn(body, pageURL)
}

// SourceResolver is a mock implementation of medcrawl.SourceResolver.
type SourceResolver struct {
	ResolveFn func(body []byte, pageURL string) *medcrawl.Source
}

func (r *SourceResolver) Resolve(body []byte, pageURL string) *medcrawl.Source {
	return r.ResolveFn(body, pageURL)
}
