// Package fs writes exported record sets to disk.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/medcrawl"
)

// FileName returns the default export file name for a run, e.g.
// "medcrawl-medlineplus-20260114-093000.xlsx".
func FileName(source string, format medcrawl.Format, now time.Time) string {
	return fmt.Sprintf("medcrawl-%s-%s%s", slug(source), now.Format("20060102-150405"), format.Extension())
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if s == "" {
		return "export"
	}
	return s
}

// WriteFile writes data to path atomically: the content goes to a
// temporary file in the same directory which is renamed over path only
// once fully written. Parent directories are created as needed.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Writer exports records into a directory.
type Writer struct {
	dir string

	// Now names generated files. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, Now: time.Now}
}

// Write exports records with e and writes them to path, or to a file
// named after the source inside the writer's directory when path is empty.
// It returns the path written.
func (w *Writer) Write(e medcrawl.Exporter, source string, records []*medcrawl.Record, path string) (string, error) {
	data, err := e.Export(records)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = filepath.Join(w.dir, FileName(source, e.Format(), w.Now()))
	}
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
