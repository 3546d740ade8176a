package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medcrawl"
	"golang.org/x/net/html"
)

// DefaultParagraphSelector matches plain paragraphs.
const DefaultParagraphSelector = "p"

// ParagraphFilter turns a container into its qualifying text fragments.
type ParagraphFilter struct {
	Selector  string
	MinLength int
}

// NewParagraphFilter returns a filter for selector, or for plain paragraphs
// when selector is empty. A fragment is kept only when its length in
// characters exceeds minLength.
func NewParagraphFilter(selector string, minLength int) *ParagraphFilter {
	if selector == "" {
		selector = DefaultParagraphSelector
	}
	if minLength <= 0 {
		minLength = medcrawl.DefaultMinParagraphLength
	}
	return &ParagraphFilter{Selector: selector, MinLength: minLength}
}

// Filter returns the normalized text of every matching element inside
// container, in document order. When matching elements are nested only the
// outermost one contributes.
func (f *ParagraphFilter) Filter(container *goquery.Selection) []string {
	matched := container.Find(f.Selector)
	set := make(map[*html.Node]bool, matched.Length())
	for _, n := range matched.Nodes {
		set[n] = true
	}

	var fragments []string
	matched.Each(func(_ int, s *goquery.Selection) {
		if hasMatchedAncestor(s.Get(0), set) {
			return
		}
		text := normalizeText(textOf(s))
		if utf8.RuneCountInString(text) > f.MinLength {
			fragments = append(fragments, text)
		}
	})
	return fragments
}

func hasMatchedAncestor(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}
