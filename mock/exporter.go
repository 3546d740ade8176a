package mock

import "github.com/fwojciec/medcrawl"

var _ medcrawl.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of medcrawl.Exporter.
type Exporter struct {
	ExportFn func(records []*medcrawl.Record) ([]byte, error)
	FormatFn func() medcrawl.Format
}

func (e *Exporter) Export(records []*medcrawl.Record) ([]byte, error) {
	return e.ExportFn(records)
}

func (e *Exporter) Format() medcrawl.Format {
	return e.FormatFn()
}
