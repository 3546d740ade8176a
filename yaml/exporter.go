package yaml

import (
	"bytes"

	"github.com/fwojciec/medcrawl"
	"gopkg.in/yaml.v3"
)

var _ medcrawl.Exporter = (*Exporter)(nil)

// Exporter writes records as a YAML sequence of mappings with the keys
// key, title, body and source_url.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Format implements medcrawl.Exporter.
func (e *Exporter) Format() medcrawl.Format {
	return medcrawl.FormatYAML
}

// Export implements medcrawl.Exporter.
func (e *Exporter) Export(records []*medcrawl.Record) ([]byte, error) {
	if records == nil {
		records = []*medcrawl.Record{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
