// Package json exports records as a JSON array.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/medcrawl"
)

var _ medcrawl.Exporter = (*Exporter)(nil)

// Exporter writes records as an indented JSON array of objects with the
// keys key, title, body and source_url. Non-ASCII text and HTML characters
// are written as-is.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Format implements medcrawl.Exporter.
func (e *Exporter) Format() medcrawl.Format {
	return medcrawl.FormatJSON
}

// Export implements medcrawl.Exporter. The output ends with a newline.
func (e *Exporter) Export(records []*medcrawl.Record) ([]byte, error) {
	if records == nil {
		records = []*medcrawl.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
