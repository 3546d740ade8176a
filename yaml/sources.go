// Package yaml loads source profiles from YAML and exports records as YAML.
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/medcrawl"
	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// sourceFile is the on-disk layout of a profile file.
type sourceFile struct {
	Sources []*medcrawl.Source `yaml:"sources"`
}

// Catalog is an ordered set of source profiles addressed by name.
type Catalog struct {
	sources []*medcrawl.Source
}

// DefaultCatalog returns the built-in profiles.
func DefaultCatalog() (*Catalog, error) {
	return Parse(defaultSources)
}

// Parse decodes and validates a profile document. Unknown fields are
// rejected so that typos in selector keys surface immediately.
func Parse(data []byte) (*Catalog, error) {
	var file sourceFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, medcrawl.Errorf(medcrawl.EINVALID, "failed to parse sources: %v", err)
	}

	c := &Catalog{}
	for _, src := range file.Sources {
		if src == nil {
			continue
		}
		if err := src.Validate(); err != nil {
			return nil, err
		}
		c.put(src)
	}
	return c, nil
}

// LoadFile reads a profile file and layers it over the built-in profiles:
// a profile with a known name replaces the built-in one, others are added.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	overrides, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	for _, src := range overrides.sources {
		c.put(src)
	}
	return c, nil
}

func (c *Catalog) put(src *medcrawl.Source) {
	if src.Family == "" {
		src.Family = medcrawl.FamilyUniversal
	}
	for i, existing := range c.sources {
		if existing.Name == src.Name {
			c.sources[i] = src
			return
		}
	}
	c.sources = append(c.sources, src)
}

// Get returns the profile with the given name.
func (c *Catalog) Get(name string) (*medcrawl.Source, error) {
	for _, src := range c.sources {
		if src.Name == name {
			return src, nil
		}
	}
	return nil, medcrawl.Errorf(medcrawl.ENOTFOUND, "unknown source %q", name)
}

// List returns every profile in definition order.
func (c *Catalog) List() []*medcrawl.Source {
	out := make([]*medcrawl.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Universal returns the profile used for pages of unknown family. If the
// catalog defines none, a bare universal profile is returned.
func (c *Catalog) Universal() *medcrawl.Source {
	for _, src := range c.sources {
		if src.Family == medcrawl.FamilyUniversal {
			return src
		}
	}
	return &medcrawl.Source{Name: string(medcrawl.FamilyUniversal), Family: medcrawl.FamilyUniversal}
}
