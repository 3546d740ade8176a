package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/medcrawl"
)

// Ensure LoggingResolver implements medcrawl.SourceResolver.
var _ medcrawl.SourceResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a SourceResolver with logging of the chosen profile.
type LoggingResolver struct {
	next   medcrawl.SourceResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next medcrawl.SourceResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the result.
func (r *LoggingResolver) Resolve(body []byte, pageURL string) *medcrawl.Source {
	begin := time.Now()
	src := r.next.Resolve(body, pageURL)
	r.logger.Info("source detection",
		"url", pageURL,
		"source", src.Name,
		"family", string(src.Family),
		"duration", time.Since(begin),
	)
	return src
}
