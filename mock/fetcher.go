package mock

import (
	"context"

	"github.com/fwojciec/medcrawl"
)

var (
	_ medcrawl.Fetcher = (*Fetcher)(nil)
	_ medcrawl.Pacer   = (*Pacer)(nil)
)

// Fetcher is a mock implementation of medcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req medcrawl.FetchRequest) *medcrawl.FetchResult
}

func (f *Fetcher) Fetch(ctx context.Context, req medcrawl.FetchRequest) *medcrawl.FetchResult {
	return f.FetchFn(ctx, req)
}

// Pacer is a mock implementation of medcrawl.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context, host string) error
}

func (p *Pacer) Wait(ctx context.Context, host string) error {
	return p.WaitFn(ctx, host)
}
