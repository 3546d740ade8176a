package slog

import (
	"log/slog"

	"github.com/fwojciec/medcrawl"
)

var (
	_ medcrawl.PageExtractor    = (*LoggingPageExtractor)(nil)
	_ medcrawl.LinkExtractor    = (*LoggingLinkExtractor)(nil)
	_ medcrawl.ExtractorFactory = (*LoggingExtractorFactory)(nil)
)

// LoggingPageExtractor wraps a PageExtractor with debug logging of each
// classification.
type LoggingPageExtractor struct {
	next   medcrawl.PageExtractor
	logger *slog.Logger
}

// NewLoggingPageExtractor creates a new LoggingPageExtractor.
func NewLoggingPageExtractor(next medcrawl.PageExtractor, logger *slog.Logger) *LoggingPageExtractor {
	return &LoggingPageExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the page kind.
func (e *LoggingPageExtractor) Extract(result *medcrawl.FetchResult) medcrawl.Page {
	page := e.next.Extract(result)
	attrs := []any{"url", result.URL, "kind", page.Kind().String()}
	switch p := page.(type) {
	case *medcrawl.Article:
		attrs = append(attrs, "strategy", p.Strategy, "paragraphs", len(p.Paragraphs))
	case *medcrawl.Index:
		attrs = append(attrs, "links", len(p.Links))
	case *medcrawl.Blocked:
		attrs = append(attrs, "code", p.Code)
	}
	e.logger.Debug("extract", attrs...)
	return page
}

// LoggingLinkExtractor wraps a LinkExtractor with logging of index reads.
type LoggingLinkExtractor struct {
	next   medcrawl.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next medcrawl.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the link count.
func (e *LoggingLinkExtractor) ExtractLinks(body []byte, pageURL string) (links []medcrawl.Link, err error) {
	defer func() {
		e.logger.Info("index links",
			"url", pageURL,
			"count", len(links),
			"err", err,
		)
	}()
	return e.next.ExtractLinks(body, pageURL)
}

// LoggingExtractorFactory wraps an ExtractorFactory so every extractor it
// builds logs.
type LoggingExtractorFactory struct {
	next   medcrawl.ExtractorFactory
	logger *slog.Logger
}

// NewLoggingExtractorFactory creates a new LoggingExtractorFactory.
func NewLoggingExtractorFactory(next medcrawl.ExtractorFactory, logger *slog.Logger) *LoggingExtractorFactory {
	return &LoggingExtractorFactory{next: next, logger: logger}
}

// PageExtractor builds a logging page extractor for src.
func (f *LoggingExtractorFactory) PageExtractor(src *medcrawl.Source) (medcrawl.PageExtractor, error) {
	e, err := f.next.PageExtractor(src)
	if err != nil {
		return nil, err
	}
	return NewLoggingPageExtractor(e, f.logger.With("source", src.Name)), nil
}

// LinkExtractor builds a logging link extractor for src.
func (f *LoggingExtractorFactory) LinkExtractor(src *medcrawl.Source) (medcrawl.LinkExtractor, error) {
	e, err := f.next.LinkExtractor(src)
	if err != nil {
		return nil, err
	}
	return NewLoggingLinkExtractor(e, f.logger.With("source", src.Name)), nil
}
