// Package slog decorates medcrawl services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medcrawl"
)

// Ensure LoggingFetcher implements medcrawl.Fetcher.
var _ medcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of every request.
type LoggingFetcher struct {
	next   medcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next medcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome. Failures are
// logged as warnings.
func (f *LoggingFetcher) Fetch(ctx context.Context, req medcrawl.FetchRequest) (result *medcrawl.FetchResult) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if !result.OK() {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"url", req.URL,
			"status", result.Status.String(),
			"code", result.Code,
			"bytes", len(result.Body),
			"duration", time.Since(begin),
			"err", result.Err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}
