package main

import (
	"fmt"

	"github.com/fwojciec/medcrawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	src, err := c.source(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}
	format, err := medcrawl.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}

	driver := deps.driver(c.Timeout, c.RPS, c.SkipSeen)
	progress := newProgress(deps.Stderr)
	result, runErr := driver.Run(deps.Ctx, src, progress.Handle)
	progress.Stop()

	if result != nil {
		fmt.Fprintln(deps.Stderr, result.Summary())
	}
	if result == nil || len(result.Records) == 0 {
		if runErr == nil {
			runErr = medcrawl.Errorf(medcrawl.ENODATA, "no data extracted")
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(runErr))
		if hint := terminalHint(runErr); hint != "" {
			fmt.Fprintln(deps.Stderr, hint)
		}
		return runErr
	}

	// A canceled run still exports what it collected.
	if err := deps.export(format, src.Name, result.Records, c.Output, c.Dir); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medcrawl.ErrorMessage(err))
		return err
	}
	return runErr
}

// source returns a copy of the named profile with the command-line
// overrides applied.
func (c *CrawlCmd) source(deps *Dependencies) (*medcrawl.Source, error) {
	profile, err := deps.Catalog.Get(c.Source)
	if err != nil {
		return nil, err
	}
	src := *profile

	if c.Strictness != "" {
		s, err := medcrawl.ParseStrictness(c.Strictness)
		if err != nil {
			return nil, err
		}
		src.Strictness = s
		src.MinParagraphLength = 0
	}
	if c.Keys != "" {
		src.Keys = c.Keys
	}
	switch {
	case c.Limit > 0:
		src.LinkLimit = c.Limit
	case c.Limit < 0:
		src.LinkLimit = 0
	}
	if c.NoDelay {
		src.Delay, src.Jitter = 0, 0
	}

	if !src.Crawlable() {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "source %q has no index to crawl; use 'medcrawl fetch <url>' instead", src.Name)
	}
	return &src, nil
}

// terminalHint suggests what to try after a run that produced nothing.
func terminalHint(err error) string {
	switch medcrawl.ErrorCode(err) {
	case medcrawl.EBLOCKED:
		return "Hint: the site is refusing automated requests; wait and retry, or lower --rps"
	case medcrawl.EUNREACHABLE:
		return "Hint: check your network connection or raise --timeout"
	case medcrawl.ENODATA:
		return "Hint: the site markup may have changed; try --strictness lenient or override the profile with --sources"
	}
	return ""
}
