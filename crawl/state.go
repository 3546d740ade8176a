package crawl

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/medcrawl"
)

// KeyState is the lifecycle state of one key in a run.
type KeyState int

const (
	KeyPending KeyState = iota
	KeyFetching
	KeyDone
	KeyFailed
)

func (s KeyState) String() string {
	switch s {
	case KeyPending:
		return "pending"
	case KeyFetching:
		return "fetching"
	case KeyDone:
		return "done"
	case KeyFailed:
		return "failed"
	}
	return "unknown"
}

// KeyStatus reports how one key of the key space fared.
type KeyStatus struct {
	Key      string
	IndexURL string
	State    KeyState
	Links    int
	Records  int
	Err      error
}

// Aggregator collects records in arrival order. Records are never merged
// or deduplicated.
type Aggregator struct {
	records []*medcrawl.Record
}

// Append adds a record.
func (a *Aggregator) Append(r *medcrawl.Record) {
	a.records = append(a.records, r)
}

// Len returns the number of records collected.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Records returns a copy of the collected records.
func (a *Aggregator) Records() []*medcrawl.Record {
	return slices.Clone(a.records)
}

// Result is the outcome of a crawl run.
type Result struct {
	RunID   string
	Source  string
	Records []*medcrawl.Record
	Keys    []KeyStatus

	// Failures counts failed keys plus followed links that produced no record.
	Failures int
	// Skipped counts followed links classified as anything but an article.
	Skipped int
	// Duplicates counts records whose source URL was already recorded.
	Duplicates int

	Fetches         int
	TransportErrors int
	Timeouts        int
	// StatusCodes is a histogram of HTTP status codes received.
	StatusCodes map[int]int
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	failed := 0
	for _, k := range r.Keys {
		if k.State == KeyFailed {
			failed++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d records from %d keys (%d failed), %d links skipped", len(r.Records), len(r.Keys), failed, r.Skipped)
	if r.Duplicates > 0 {
		fmt.Fprintf(&b, ", %d duplicate URLs", r.Duplicates)
	}
	if len(r.StatusCodes) > 0 {
		codes := slices.Sorted(maps.Keys(r.StatusCodes))
		parts := make([]string, len(codes))
		for i, c := range codes {
			parts[i] = fmt.Sprintf("%d (%d)", c, r.StatusCodes[c])
		}
		fmt.Fprintf(&b, ", HTTP %s", strings.Join(parts, " "))
	}
	return b.String()
}

// blockingCodes are the HTTP statuses that indicate bot protection.
var blockingCodes = map[int]bool{401: true, 403: true, 429: true, 503: true}

// state is the per-run bookkeeping of a Driver. It is owned by a single
// Run call and never shared.
type state struct {
	result  *Result
	agg     Aggregator
	urls    map[uint64]struct{}
	blocked int
}

func newState(runID string, src *medcrawl.Source) *state {
	keys := src.KeySpace()
	statuses := make([]KeyStatus, len(keys))
	for i, k := range keys {
		statuses[i] = KeyStatus{Key: k, IndexURL: src.IndexURLFor(k), State: KeyPending}
	}
	return &state{
		result: &Result{
			RunID:       runID,
			Source:      src.Name,
			Keys:        statuses,
			StatusCodes: make(map[int]int),
		},
		urls: make(map[uint64]struct{}),
	}
}

// observe records the outcome of a fetch.
func (s *state) observe(res *medcrawl.FetchResult) {
	s.result.Fetches++
	switch res.Status {
	case medcrawl.StatusTransportError:
		s.result.TransportErrors++
	case medcrawl.StatusTimeout:
		s.result.Timeouts++
	}
	if res.Code != 0 {
		s.result.StatusCodes[res.Code]++
	}
}

func (s *state) add(r *medcrawl.Record) {
	h := xxhash.Sum64String(r.SourceURL)
	if _, ok := s.urls[h]; ok {
		s.result.Duplicates++
	}
	s.urls[h] = struct{}{}
	s.agg.Append(r)
}

func (s *state) skip(page medcrawl.Page) {
	s.result.Skipped++
	s.result.Failures++
	if b, ok := page.(*medcrawl.Blocked); ok && b.Code != 0 {
		s.blocked++
	}
}

func (s *state) finish() *Result {
	s.result.Records = s.agg.Records()
	return s.result
}

// terminalError explains a run that produced no records. Blocking wins
// over unreachability, which wins over a plain lack of data.
func (s *state) terminalError() error {
	r := s.result
	var blocking []string
	for _, code := range slices.Sorted(maps.Keys(r.StatusCodes)) {
		if blockingCodes[code] {
			blocking = append(blocking, fmt.Sprintf("%d (%d)", code, r.StatusCodes[code]))
		}
	}
	switch {
	case len(blocking) > 0:
		return medcrawl.Errorf(medcrawl.EBLOCKED, "no data extracted: site likely blocking requests (HTTP %s)", strings.Join(blocking, " "))
	case r.Fetches > 0 && r.TransportErrors+r.Timeouts == r.Fetches:
		return medcrawl.Errorf(medcrawl.EUNREACHABLE, "no data extracted: network unreachable (%d transport errors, %d timeouts)", r.TransportErrors, r.Timeouts)
	case s.blocked > 0:
		return medcrawl.Errorf(medcrawl.EBLOCKED, "no data extracted: %d pages looked like block pages", s.blocked)
	}
	return medcrawl.Errorf(medcrawl.ENODATA, "no data extracted: no page held enough prose")
}
