package medcrawl

import (
	"context"
	"time"
)

// FetchStatus is the normalized outcome of a single HTTP GET.
type FetchStatus int

// Fetch outcomes.
const (
	StatusOK FetchStatus = iota
	StatusHTTPError
	StatusTransportError
	StatusTimeout
)

// String returns the status name used in logs and progress output.
func (s FetchStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusHTTPError:
		return "http_error"
	case StatusTransportError:
		return "transport_error"
	case StatusTimeout:
		return "timeout"
	}
	return "unknown"
}

// FetchRequest describes one GET request.
type FetchRequest struct {
	URL string

	// Headers override the fetcher's default header bundle
	// (User-Agent, Accept-Language, Referer...).
	Headers map[string]string

	// Timeout bounds the whole request. Zero uses the fetcher default.
	Timeout time.Duration

	// KeepErrorBody retains the body of non-2xx responses. Some sites
	// return useful block pages even on error.
	KeepErrorBody bool
}

// FetchResult is the outcome of a fetch. It is produced once by a Fetcher
// and must not be modified by consumers.
type FetchResult struct {
	URL      string
	FinalURL string // after redirects; empty when no response was received
	Status   FetchStatus
	Code     int // HTTP status code; zero when no response was received
	Body     []byte
	Err      error // cause of a transport or timeout failure
}

// OK reports whether the fetch returned a 2xx response.
func (r *FetchResult) OK() bool {
	return r != nil && r.Status == StatusOK
}

// BaseURL returns the URL that relative links on the page resolve against.
func (r *FetchResult) BaseURL() string {
	if r.FinalURL != "" {
		return r.FinalURL
	}
	return r.URL
}

// Fetcher issues single HTTP GET requests.
//
// Fetch never fails: DNS errors, connection resets, malformed responses and
// timeouts are normalized into the returned FetchResult. Implementations do
// not retry.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) *FetchResult
}

// Pacer slows requests to a host. Wait blocks until a request may proceed
// and returns an error only when the context is canceled.
type Pacer interface {
	Wait(ctx context.Context, host string) error
}
