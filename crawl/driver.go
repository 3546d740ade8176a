// Package crawl drives alphabetical-index crawls of medical sites.
// It walks a source's key space, fetches each index page, follows the topic
// links it lists and aggregates the pages that classify as articles.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/bloom"
	"github.com/google/uuid"
)

// Seen-set sizing for SkipSeen runs.
const (
	seenExpectedURLs = 20000
	seenFPRate       = 0.001
)

// Driver crawls sources sequentially. A Driver holds no per-run state and
// may be reused across runs.
type Driver struct {
	Fetcher    medcrawl.Fetcher
	Extractors medcrawl.ExtractorFactory

	// Pacer, when set, is waited on before every request.
	Pacer medcrawl.Pacer

	// Resolver picks the source profile in single-URL mode when the caller
	// passes none.
	Resolver medcrawl.SourceResolver

	// Timeout bounds each request. Zero uses the fetcher default.
	Timeout time.Duration

	// SkipSeen follows each article URL at most once per run. Duplicates
	// are kept otherwise. The seen set is approximate: a false positive
	// skips a URL that was never fetched.
	SkipSeen bool

	// Sleep waits between article fetches. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type     ProgressType
	Key      string
	KeyIndex int
	KeyTotal int
	URL      string
	Kind     medcrawl.PageKind
	Records  int
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	KeyStarted ProgressType = iota
	KeyFinished
	KeyFailed
	LinkExtracted
	LinkSkipped
	RunFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls every key of src in order. A failing key or link never aborts
// the run; only context cancellation does, in which case the partial result
// is returned with the context error. A run that yields no records returns
// its result together with an EBLOCKED, EUNREACHABLE or ENODATA error.
func (d *Driver) Run(ctx context.Context, src *medcrawl.Source, progress ProgressFunc) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !src.Crawlable() {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "source %q has no index URL", src.Name)
	}
	pages, err := d.Extractors.PageExtractor(src)
	if err != nil {
		return nil, err
	}
	links, err := d.Extractors.LinkExtractor(src)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	st := newState(uuid.NewString(), src)
	var seen *bloom.Visited
	if d.SkipSeen {
		seen = bloom.NewVisited(seenExpectedURLs, seenFPRate)
	}

	total := len(st.result.Keys)
	for i := range st.result.Keys {
		if err := ctx.Err(); err != nil {
			return st.finish(), err
		}
		ks := &st.result.Keys[i]
		ks.State = KeyFetching
		progress(ProgressEvent{Type: KeyStarted, Key: ks.Key, KeyIndex: i, KeyTotal: total, URL: ks.IndexURL})

		if err := d.crawlKey(ctx, src, st, ks, pages, links, seen, progress); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return st.finish(), ctxErr
			}
			ks.State = KeyFailed
			ks.Err = err
			st.result.Failures++
			progress(ProgressEvent{Type: KeyFailed, Key: ks.Key, KeyIndex: i, KeyTotal: total, URL: ks.IndexURL, Error: err})
			continue
		}

		ks.State = KeyDone
		progress(ProgressEvent{Type: KeyFinished, Key: ks.Key, KeyIndex: i, KeyTotal: total, Records: ks.Records})
	}

	result := st.finish()
	progress(ProgressEvent{Type: RunFinished, KeyTotal: total, Records: len(result.Records)})
	if len(result.Records) == 0 {
		return result, st.terminalError()
	}
	return result, nil
}

// crawlKey fetches the index page of one key and follows its links.
// It returns an error only when the index itself is unusable.
func (d *Driver) crawlKey(
	ctx context.Context,
	src *medcrawl.Source,
	st *state,
	ks *KeyStatus,
	pages medcrawl.PageExtractor,
	links medcrawl.LinkExtractor,
	seen *bloom.Visited,
	progress ProgressFunc,
) error {
	index := d.fetch(ctx, src, ks.IndexURL, false)
	st.observe(index)
	if !index.OK() {
		return indexError(index)
	}

	topics, err := links.ExtractLinks(index.Body, index.BaseURL())
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return medcrawl.Errorf(medcrawl.ENOCONTENT, "no topic links on index page %s", ks.IndexURL)
	}
	ks.Links = len(topics)

	key := strings.ToUpper(ks.Key)
	for _, link := range topics {
		if seen != nil && !seen.Visit(link.URL) {
			st.result.Skipped++
			progress(ProgressEvent{Type: LinkSkipped, Key: ks.Key, URL: link.URL})
			continue
		}

		if err := d.sleep(ctx, Pause(src.Delay, src.Jitter)); err != nil {
			return err
		}

		res := d.fetch(ctx, src, link.URL, true)
		st.observe(res)
		if err := ctx.Err(); err != nil {
			return err
		}

		page := pages.Extract(res)
		article, ok := page.(*medcrawl.Article)
		if !ok {
			st.skip(page)
			progress(ProgressEvent{Type: LinkSkipped, Key: ks.Key, URL: link.URL, Kind: page.Kind()})
			continue
		}

		title := link.Label
		if title == "" {
			title = article.Title
		}
		record := medcrawl.NewRecord(key, title, article.Paragraphs, link.URL)
		if err := record.Validate(); err != nil {
			st.result.Failures++
			progress(ProgressEvent{Type: LinkSkipped, Key: ks.Key, URL: link.URL, Kind: page.Kind(), Error: err})
			continue
		}

		st.add(record)
		ks.Records++
		progress(ProgressEvent{Type: LinkExtracted, Key: ks.Key, URL: link.URL, Kind: medcrawl.KindArticle, Records: st.agg.Len()})
	}
	return nil
}

// PageResult is the outcome of a single-URL fetch.
type PageResult struct {
	URL    string
	Source *medcrawl.Source
	Fetch  *medcrawl.FetchResult
	Page   medcrawl.Page
}

// Record returns the page as a record when it classified as an article.
// The key is the source name; the title is the page heading, or the URL
// when the page has none.
func (r *PageResult) Record() (*medcrawl.Record, bool) {
	article, ok := r.Page.(*medcrawl.Article)
	if !ok {
		return nil, false
	}
	title := article.Title
	if title == "" {
		title = r.URL
	}
	return medcrawl.NewRecord(r.Source.Name, title, article.Paragraphs, r.URL), true
}

// Fetch runs one pass of the pipeline over a single URL. When src is nil
// the profile is chosen by the Resolver after the page is fetched. Index
// pages are returned as they are; their links are never followed.
func (d *Driver) Fetch(ctx context.Context, src *medcrawl.Source, rawURL string) (*PageResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, medcrawl.Errorf(medcrawl.EMALFORMEDURL, "invalid URL: %q", rawURL)
	}
	if src == nil && d.Resolver == nil {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "no source profile for %s", rawURL)
	}

	fetchSrc := src
	if fetchSrc == nil {
		fetchSrc = &medcrawl.Source{}
	}
	res := d.fetch(ctx, fetchSrc, rawURL, true)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if src == nil {
		src = d.Resolver.Resolve(res.Body, res.BaseURL())
	}
	pages, err := d.Extractors.PageExtractor(src)
	if err != nil {
		return nil, err
	}
	return &PageResult{URL: rawURL, Source: src, Fetch: res, Page: pages.Extract(res)}, nil
}

// fetch paces and issues one request. Pacing errors only occur on
// cancellation and are reported as transport failures.
func (d *Driver) fetch(ctx context.Context, src *medcrawl.Source, rawURL string, keepErrorBody bool) *medcrawl.FetchResult {
	if d.Pacer != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := d.Pacer.Wait(ctx, u.Host); err != nil {
				return &medcrawl.FetchResult{URL: rawURL, Status: medcrawl.StatusTransportError, Err: err}
			}
		}
	}
	return d.Fetcher.Fetch(ctx, medcrawl.FetchRequest{
		URL:           rawURL,
		Headers:       src.Headers,
		Timeout:       d.Timeout,
		KeepErrorBody: keepErrorBody,
	})
}

func (d *Driver) sleep(ctx context.Context, dur time.Duration) error {
	if d.Sleep != nil {
		return d.Sleep(ctx, dur)
	}
	return sleep(ctx, dur)
}

// indexError converts a failed index fetch into an application error.
func indexError(res *medcrawl.FetchResult) error {
	switch res.Status {
	case medcrawl.StatusHTTPError:
		return medcrawl.Errorf(medcrawl.EHTTP, "index page %s returned HTTP %d", res.URL, res.Code)
	case medcrawl.StatusTimeout:
		return medcrawl.Errorf(medcrawl.ETIMEOUT, "index page %s timed out", res.URL)
	}
	if res.Err != nil {
		if code := medcrawl.ErrorCode(res.Err); code != medcrawl.EINTERNAL {
			return res.Err
		}
		return medcrawl.Errorf(medcrawl.ETRANSPORT, "index page %s: %v", res.URL, res.Err)
	}
	return medcrawl.Errorf(medcrawl.ETRANSPORT, "index page %s could not be fetched", res.URL)
}
