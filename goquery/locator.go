package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Generic selectors shared by every source.
const (
	ArticleSelector     = "article"
	MainContentSelector = "main, [role=main], div.content, #content"
)

// Strategy is one step of the container lookup chain. Match returns the
// matching element or an empty selection.
type Strategy struct {
	Name  string
	Match func(root *goquery.Selection) *goquery.Selection
}

// SelectorStrategy matches the first element in document order that
// matches selector.
func SelectorStrategy(name, selector string) Strategy {
	return Strategy{
		Name: name,
		Match: func(root *goquery.Selection) *goquery.Selection {
			return root.Find(selector).First()
		},
	}
}

// DensityStrategy matches the block element with the most direct
// paragraph children. Ties go to the earliest element.
func DensityStrategy() Strategy {
	return Strategy{
		Name: "density",
		Match: func(root *goquery.Selection) *goquery.Selection {
			var best *html.Node
			bestCount := 0
			for _, n := range root.Nodes {
				if c, count := densest(n); count > bestCount {
					best, bestCount = c, count
				}
			}
			if best == nil {
				return root.FindNodes()
			}
			return root.FindNodes(best)
		},
	}
}

// BodyStrategy matches the document body.
func BodyStrategy() Strategy {
	return SelectorStrategy("body", "body")
}

var densityCandidates = map[atom.Atom]bool{
	atom.Div:     true,
	atom.Section: true,
	atom.Article: true,
	atom.Main:    true,
	atom.Td:      true,
}

// densest walks the tree in document order so the first of several equally
// dense elements wins.
func densest(root *html.Node) (*html.Node, int) {
	var best *html.Node
	bestCount := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && densityCandidates[n.DataAtom] {
			count := 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.DataAtom == atom.P {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = n, count
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return best, bestCount
}

// Container is the element chosen as the main content of a page.
type Container struct {
	Selection *goquery.Selection
	// Priority is the index of the matching strategy; lower is more specific.
	Priority int
	Strategy string
}

// Locator runs an ordered chain of strategies and returns the first match.
type Locator struct {
	strategies []Strategy
}

// NewLocator builds the standard chain: the site selectors in order, then
// article, main content, the density heuristic and finally body.
func NewLocator(siteSelectors []string) *Locator {
	strategies := make([]Strategy, 0, len(siteSelectors)+4)
	for _, selector := range siteSelectors {
		strategies = append(strategies, SelectorStrategy("site:"+selector, selector))
	}
	strategies = append(strategies,
		SelectorStrategy("article", ArticleSelector),
		SelectorStrategy("main", MainContentSelector),
		DensityStrategy(),
		BodyStrategy(),
	)
	return NewLocatorWithStrategies(strategies...)
}

// NewLocatorWithStrategies builds a locator from an explicit chain.
func NewLocatorWithStrategies(strategies ...Strategy) *Locator {
	return &Locator{strategies: strategies}
}

// Strategies returns the strategy names in evaluation order.
func (l *Locator) Strategies() []string {
	names := make([]string, len(l.strategies))
	for i, s := range l.strategies {
		names[i] = s.Name
	}
	return names
}

// Locate returns the container matched by the first successful strategy.
// It reports false when no strategy matched, which only happens when the
// chain has no body fallback or the page has no body.
func (l *Locator) Locate(doc *Document) (*Container, bool) {
	root := doc.Selection()
	for i, s := range l.strategies {
		sel := s.Match(root)
		if sel == nil || sel.Length() == 0 {
			continue
		}
		return &Container{Selection: sel.First(), Priority: i, Strategy: s.Name}, true
	}
	return nil, false
}
