package goquery

import (
	"github.com/fwojciec/medcrawl"
)

var (
	_ medcrawl.PageExtractor    = (*Extractor)(nil)
	_ medcrawl.LinkExtractor    = (*IndexLinkExtractor)(nil)
	_ medcrawl.ExtractorFactory = (*Factory)(nil)
)

// Extractor runs the locate and classify pipeline for one source profile.
type Extractor struct {
	locator    *Locator
	classifier *Classifier
}

// NewExtractor builds the pipeline described by src.
func NewExtractor(src *medcrawl.Source) (*Extractor, error) {
	links, err := NewLinkRule("", src.LinkPathPattern)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		locator:    NewLocator(src.ContainerSelectors),
		classifier: NewClassifier(NewParagraphFilter(src.ParagraphSelector, src.MinLength()), links),
	}, nil
}

// Extract classifies a fetched page. Non-2xx responses are blocked
// whatever their body holds, so an error page never becomes an article.
// Transport failures and timeouts are blocked with no code.
func (e *Extractor) Extract(result *medcrawl.FetchResult) medcrawl.Page {
	switch result.Status {
	case medcrawl.StatusHTTPError:
		return &medcrawl.Blocked{Code: result.Code}
	case medcrawl.StatusTransportError, medcrawl.StatusTimeout:
		return &medcrawl.Blocked{}
	}

	doc, err := NewDocument(result.Body)
	if err != nil {
		return e.classifier.unusable(result)
	}

	root := doc.Selection()
	scope := root
	strategy := ""
	if container, ok := e.locator.Locate(doc); ok {
		scope = container.Selection
		strategy = container.Strategy
	}

	page := e.classifier.Classify(scope, root, result)
	if article, ok := page.(*medcrawl.Article); ok {
		article.Title = doc.Title()
		article.Strategy = strategy
	}
	return page
}

// IndexLinkExtractor reads the topic links of an alphabetical index page.
type IndexLinkExtractor struct {
	rule  *LinkRule
	limit int
}

// NewIndexLinkExtractor builds the index reader described by src.
func NewIndexLinkExtractor(src *medcrawl.Source) (*IndexLinkExtractor, error) {
	rule, err := NewLinkRule(src.IndexLinkSelector, src.LinkPathPattern)
	if err != nil {
		return nil, err
	}
	return &IndexLinkExtractor{rule: rule, limit: src.LinkLimit}, nil
}

// ExtractLinks returns the topic links of an index page in document order,
// capped at the source's link limit.
func (e *IndexLinkExtractor) ExtractLinks(body []byte, pageURL string) ([]medcrawl.Link, error) {
	doc, err := NewDocument(body)
	if err != nil {
		return nil, err
	}
	links, err := e.rule.Extract(doc.Selection(), pageURL)
	if err != nil {
		return nil, err
	}
	if e.limit > 0 && len(links) > e.limit {
		links = links[:e.limit]
	}
	return links, nil
}

// Factory builds goquery extractors for source profiles.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// PageExtractor implements medcrawl.ExtractorFactory.
func (f *Factory) PageExtractor(src *medcrawl.Source) (medcrawl.PageExtractor, error) {
	return NewExtractor(src)
}

// LinkExtractor implements medcrawl.ExtractorFactory.
func (f *Factory) LinkExtractor(src *medcrawl.Source) (medcrawl.LinkExtractor, error) {
	return NewIndexLinkExtractor(src)
}
