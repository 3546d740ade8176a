package main

import (
	"fmt"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	res, err := c.fetch(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}

	switch page := res.Page.(type) {
	case *medcrawl.Article:
		return c.printArticle(deps, res, page)
	case *medcrawl.Index:
		fmt.Fprintf(deps.Stdout, "Index page with %d links (not followed):\n\n", len(page.Links))
		fmt.Fprint(deps.Stdout, medcrawl.FormatLinks(page.Links))
		return nil
	case *medcrawl.Blocked:
		err = blockedError(res, page)
	default:
		err = medcrawl.Errorf(medcrawl.ENOCONTENT, "no article content or links found at %s", res.URL)
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
	return err
}

func (c *FetchCmd) fetch(deps *Dependencies) (*crawl.PageResult, error) {
	var strictness medcrawl.Strictness
	if c.Strictness != "" {
		s, err := medcrawl.ParseStrictness(c.Strictness)
		if err != nil {
			return nil, err
		}
		strictness = s
	}

	driver := deps.driver(c.Timeout, 0, false)
	driver.Resolver = overrideResolver{next: deps.Resolver, strictness: strictness}

	var src *medcrawl.Source
	if c.Source != "auto" {
		profile, err := deps.Catalog.Get(c.Source)
		if err != nil {
			return nil, err
		}
		src = withStrictness(profile, strictness)
	}
	return driver.Fetch(deps.Ctx, src, c.URL)
}

func (c *FetchCmd) printArticle(deps *Dependencies, res *crawl.PageResult, article *medcrawl.Article) error {
	record, _ := res.Record()
	if c.Output == "-" {
		return c.export(deps, res, record)
	}

	fmt.Fprintf(deps.Stdout, "Source: %s (container: %s, %d paragraphs)\n\n", res.Source.Name, article.Strategy, len(article.Paragraphs))
	fmt.Fprintln(deps.Stdout, medcrawl.FormatRecords([]*medcrawl.Record{record}, c.MaxBody))
	if c.Output == "" {
		return nil
	}
	return c.export(deps, res, record)
}

func (c *FetchCmd) export(deps *Dependencies, res *crawl.PageResult, record *medcrawl.Record) error {
	format, err := medcrawl.ParseFormat(c.Format)
	if err == nil {
		err = deps.export(format, res.Source.Name, []*medcrawl.Record{record}, c.Output, ".")
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
	}
	return err
}

// blockedError explains why a page yielded nothing.
func blockedError(res *crawl.PageResult, page *medcrawl.Blocked) error {
	if page.Code != 0 {
		return medcrawl.Errorf(medcrawl.EBLOCKED, "%s returned HTTP %d with no usable content: site likely blocking requests", res.URL, page.Code)
	}
	switch res.Fetch.Status {
	case medcrawl.StatusTimeout:
		return medcrawl.Errorf(medcrawl.ETIMEOUT, "%s timed out", res.URL)
	case medcrawl.StatusTransportError:
		if res.Fetch.Err != nil {
			return medcrawl.Errorf(medcrawl.EUNREACHABLE, "could not reach %s: %v", res.URL, res.Fetch.Err)
		}
		return medcrawl.Errorf(medcrawl.EUNREACHABLE, "could not reach %s", res.URL)
	}
	return medcrawl.Errorf(medcrawl.EBLOCKED, "%s returned no usable content: site likely blocking requests", res.URL)
}

// overrideResolver applies command-line overrides to detected profiles.
type overrideResolver struct {
	next       medcrawl.SourceResolver
	strictness medcrawl.Strictness
}

func (r overrideResolver) Resolve(body []byte, pageURL string) *medcrawl.Source {
	return withStrictness(r.next.Resolve(body, pageURL), r.strictness)
}

// withStrictness returns a copy of src using strictness, or src itself
// when strictness is unset.
func withStrictness(src *medcrawl.Source, strictness medcrawl.Strictness) *medcrawl.Source {
	if strictness == "" {
		return src
	}
	s := *src
	s.Strictness = strictness
	s.MinParagraphLength = 0
	return &s
}
