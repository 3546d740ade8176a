package medcrawl

import "strings"

// Format identifies an export serialization.
type Format string

// Supported export formats.
const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatXLSX, FormatJSON, FormatYAML}

// ParseFormat parses a format name, accepting common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", Errorf(EINVALID, "unsupported export format %q", s)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Exporter serializes records.
//
// Export must not modify the records and must produce identical bytes for
// an identical record sequence.
type Exporter interface {
	Export(records []*Record) ([]byte, error)
	Format() Format
}
