package mock

import "github.com/fwojciec/medcrawl"

var (
	_ medcrawl.PageExtractor    = (*PageExtractor)(nil)
	_ medcrawl.LinkExtractor    = (*LinkExtractor)(nil)
	_ medcrawl.ExtractorFactory = (*ExtractorFactory)(nil)
)

// PageExtractor is a mock implementation of medcrawl.PageExtractor.
type PageExtractor struct {
	ExtractFn func(result *medcrawl.FetchResult) medcrawl.Page
}

func (e *PageExtractor) Extract(result *medcrawl.FetchResult) medcrawl.Page {
	return e.ExtractFn(result)
}

// LinkExtractor is a mock implementation of medcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body []byte, pageURL string) ([]medcrawl.Link, error)
}

func (e *LinkExtractor) ExtractLinks(body []byte, pageURL string) ([]medcrawl.Link, error) {
	return e.ExtractLinksFn(body, pageURL)
}

// ExtractorFactory is a mock implementation of medcrawl.ExtractorFactory.
type ExtractorFactory struct {
	PageExtractorFn func(src *medcrawl.Source) (medcrawl.PageExtractor, error)
	LinkExtractorFn func(src *medcrawl.Source) (medcrawl.LinkExtractor, error)
}

func (f *ExtractorFactory) PageExtractor(src *medcrawl.Source) (medcrawl.PageExtractor, error) {
	return f.PageExtractorFn(src)
}

func (f *ExtractorFactory) LinkExtractor(src *medcrawl.Source) (medcrawl.LinkExtractor, error) {
	return f.LinkExtractorFn(src)
}
