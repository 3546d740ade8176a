// Package http provides an HTTP-based implementation of medcrawl.Fetcher
// for plain GET requests without JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"maps"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/medcrawl"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultHeaders is the header bundle sent with every request unless
// overridden. Some health sites reject requests without a browser-like
// User-Agent.
var DefaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept-Language": "es-ES,es;q=0.9",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
}

// Ensure Fetcher implements medcrawl.Fetcher at compile time.
var _ medcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using HTTP GET requests. It never retries and
// never returns an error: every failure is reported through the result.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	headers     map[string]string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the default timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders merges headers into the default header bundle.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		maps.Copy(f.headers, headers)
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient replaces the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{},
		timeout:     DefaultFetchTimeout,
		headers:     maps.Clone(DefaultHeaders),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a GET request and normalizes the outcome.
func (f *Fetcher) Fetch(ctx context.Context, req medcrawl.FetchRequest) *medcrawl.FetchResult {
	result := &medcrawl.FetchResult{URL: req.URL}

	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result.Status = medcrawl.StatusTransportError
		result.Err = medcrawl.Errorf(medcrawl.EMALFORMEDURL, "malformed URL %q", req.URL)
		return result
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return failed(result, err)
	}
	for k, v := range f.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return failed(result, err)
	}
	defer resp.Body.Close()

	result.Code = resp.StatusCode
	result.FinalURL = resp.Request.URL.String()

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !success {
		result.Status = medcrawl.StatusHTTPError
		result.Err = medcrawl.Errorf(medcrawl.EHTTP, "HTTP %d for %s", resp.StatusCode, req.URL)
		if !req.KeepErrorBody {
			return result
		}
	}

	body, err := f.readBody(resp)
	if err != nil {
		if success {
			return failed(result, err)
		}
		return result
	}

	result.Body = body
	if success {
		result.Status = medcrawl.StatusOK
	}
	return result
}

// readBody reads at most maxBodySize bytes and decodes them to UTF-8 using
// the Content-Type charset or, failing that, the document's meta tags.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, f.maxBodySize)

	r, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// failed records a transport-level failure, telling timeouts apart from
// other errors.
func failed(result *medcrawl.FetchResult, err error) *medcrawl.FetchResult {
	result.Body = nil
	if isTimeout(err) {
		result.Status = medcrawl.StatusTimeout
		result.Err = medcrawl.Errorf(medcrawl.ETIMEOUT, "fetch %s: %v", result.URL, err)
		return result
	}
	result.Status = medcrawl.StatusTransportError
	result.Err = medcrawl.Errorf(medcrawl.ETRANSPORT, "fetch %s: %v", result.URL, err)
	return result
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
