package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medcrawl"
)

// DefaultMinFragments is the fragment count a page must exceed to count
// as an article.
const DefaultMinFragments = 2

// MinBodySize is the body length below which a page with nothing usable
// is treated as blocked rather than empty.
const MinBodySize = 256

// Classifier decides what a located container holds.
type Classifier struct {
	Filter *ParagraphFilter
	Links  *LinkRule
	// MinFragments is exclusive: a page needs more fragments than this.
	MinFragments int
}

// NewClassifier returns a classifier with the default fragment threshold.
func NewClassifier(filter *ParagraphFilter, links *LinkRule) *Classifier {
	return &Classifier{Filter: filter, Links: links, MinFragments: DefaultMinFragments}
}

// Classify checks content first, links second. Content is read from the
// container only. Links are read from the container and, when it holds
// none, from the whole document, since index pages often keep a short
// intro in one block and the topic list in another. A page that has
// neither is blocked when the fetch failed or returned almost nothing,
// else empty.
func (c *Classifier) Classify(container, document *goquery.Selection, result *medcrawl.FetchResult) medcrawl.Page {
	if fragments := c.Filter.Filter(container); len(fragments) > c.MinFragments {
		return &medcrawl.Article{Paragraphs: fragments}
	}

	for _, scope := range []*goquery.Selection{container, document} {
		if scope == nil {
			continue
		}
		links, err := c.Links.Extract(scope, result.BaseURL(), result.URL)
		if err == nil && len(links) > 0 {
			return &medcrawl.Index{Links: links}
		}
	}

	return c.unusable(result)
}

func (c *Classifier) unusable(result *medcrawl.FetchResult) medcrawl.Page {
	if result.Status != medcrawl.StatusOK || len(bytes.TrimSpace(result.Body)) < MinBodySize {
		return &medcrawl.Blocked{Code: result.Code}
	}
	return &medcrawl.Empty{}
}
