package medcrawl

import (
	"net/url"
	"strings"
)

// ParagraphSeparator joins paragraphs into a record body.
const ParagraphSeparator = "\n\n"

// Record is one exported row: a successfully extracted topic.
type Record struct {
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title" yaml:"title"`
	Body      string `json:"body" yaml:"body"`
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// NewRecord builds a record from an extracted article's paragraphs.
func NewRecord(key, title string, paragraphs []string, sourceURL string) *Record {
	return &Record{
		Key:       key,
		Title:     strings.TrimSpace(title),
		Body:      strings.Join(paragraphs, ParagraphSeparator),
		SourceURL: sourceURL,
	}
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return Errorf(EINVALID, "record title required")
	}
	if strings.TrimSpace(r.Body) == "" {
		return Errorf(EINVALID, "record body required")
	}
	u, err := url.Parse(r.SourceURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "record source URL must be absolute: %q", r.SourceURL)
	}
	return nil
}

// Columns is the fixed spreadsheet header, in export order.
var Columns = []string{"Key", "Title", "Body", "Source URL"}

// Row returns the record's fields in Columns order.
func (r *Record) Row() []string {
	return []string{r.Key, r.Title, r.Body, r.SourceURL}
}
