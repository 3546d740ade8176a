package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medcrawl"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// boilerplate lists the elements removed before any container lookup.
const boilerplate = "nav, header, footer, script, style, aside"

// Document is a parsed HTML page with its boilerplate pruned.
type Document struct {
	doc    *goquery.Document
	title  string
	pruned bool
}

// NewDocument parses body and runs the prune pass. The page title is
// captured first so a heading inside a pruned header still counts.
func NewDocument(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "failed to parse HTML: %v", err)
	}
	d := &Document{doc: doc, title: pageTitle(doc)}
	d.Prune()
	return d, nil
}

// Prune removes boilerplate elements. Calling it more than once is a no-op.
func (d *Document) Prune() {
	if d.pruned {
		return
	}
	d.doc.Find(boilerplate).Remove()
	d.pruned = true
}

// Title returns the heading captured at parse time, or "" when the page had none.
func (d *Document) Title() string {
	return d.title
}

// Selection returns the document root.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// pageTitle prefers the first h1 inside the main content, then any h1,
// then the <title> element.
func pageTitle(doc *goquery.Document) string {
	for _, selector := range []string{"main h1, article h1", "h1", "title"} {
		var title string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			title = normalizeText(textOf(s))
			return title == ""
		})
		if title != "" {
			return title
		}
	}
	return ""
}

// normalizeText collapses runs of whitespace into single spaces and trims
// the result.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textOf returns the text of a selection, inserting a space wherever a
// line break or block element boundary would separate words visually.
func textOf(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Br {
				b.WriteByte(' ')
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}

var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Li:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Section:    true,
	atom.Article:    true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Tr:         true,
	atom.Blockquote: true,
}
