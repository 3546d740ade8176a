package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/medcrawl"
)

// Ensure LoggingExporter implements medcrawl.Exporter.
var _ medcrawl.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   medcrawl.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next medcrawl.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Format delegates to the wrapped exporter.
func (e *LoggingExporter) Format() medcrawl.Format {
	return e.next.Format()
}

// Export delegates to the wrapped exporter and logs the operation.
func (e *LoggingExporter) Export(records []*medcrawl.Record) (data []byte, err error) {
	defer func(begin time.Time) {
		e.logger.Info("export",
			"format", string(e.next.Format()),
			"records", len(records),
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(records)
}
