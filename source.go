package medcrawl

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// KeyPlaceholder marks where a key is substituted in Source.IndexURL.
const KeyPlaceholder = "{key}"

// DefaultMinParagraphLength is the normal strictness threshold.
const DefaultMinParagraphLength = 40

// Strictness selects the minimum paragraph length.
type Strictness string

// Strictness modes.
const (
	StrictnessLenient Strictness = "lenient"
	StrictnessNormal  Strictness = "normal"
	StrictnessStrict  Strictness = "strict"
)

// MinLength returns the number of characters a fragment must exceed to be
// kept as prose. Unknown values fall back to the normal threshold.
func (s Strictness) MinLength() int {
	switch s {
	case StrictnessLenient:
		return 30
	case StrictnessStrict:
		return 50
	}
	return DefaultMinParagraphLength
}

// ParseStrictness parses a strictness name. The empty string is normal.
func ParseStrictness(s string) (Strictness, error) {
	switch Strictness(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrictnessNormal:
		return StrictnessNormal, nil
	case StrictnessLenient:
		return StrictnessLenient, nil
	case StrictnessStrict:
		return StrictnessStrict, nil
	}
	return "", Errorf(EINVALID, "unknown strictness %q (want lenient, normal or strict)", s)
}

// Family identifies a group of sites sharing markup conventions.
type Family string

// Known source families.
const (
	FamilyUniversal   Family = "universal"
	FamilyMedlinePlus Family = "medlineplus"
	FamilyMayo        Family = "mayo"
	FamilyMSD         Family = "msd"
)

// Source is a source profile: how to enumerate a site's alphabetical index
// and how to read its pages. Selector strings are data, not logic, since
// they drift as sites are redesigned.
type Source struct {
	Name   string `yaml:"name"`
	Family Family `yaml:"family"`

	// IndexURL is the per-key index page template, e.g.
	// "https://medlineplus.gov/spanish/healthtopics_{key}.html".
	// Empty for sources that only support single-URL mode.
	IndexURL string `yaml:"index_url"`

	// Keys is the key space, one key per character (e.g. "abcdefghijklmnopqrstuvw").
	Keys string `yaml:"keys"`

	// IndexLinkSelector selects topic anchors on an index page.
	IndexLinkSelector string `yaml:"index_link_selector"`

	// LinkPathPattern, when set, must match the path of a link for it to
	// count as a topic link (e.g. "/professional/").
	LinkPathPattern string `yaml:"link_path_pattern"`

	// ContainerSelectors are the site-specific content markers, tried in
	// order before the generic strategies.
	ContainerSelectors []string `yaml:"container_selectors"`

	// ParagraphSelector selects candidate text blocks inside the container.
	// Empty means "p".
	ParagraphSelector string `yaml:"paragraph_selector"`

	Strictness Strictness `yaml:"strictness"`

	// MinParagraphLength overrides Strictness when positive.
	MinParagraphLength int `yaml:"min_paragraph_length"`

	// LinkLimit caps the topic links followed per key. Zero means no cap.
	LinkLimit int `yaml:"link_limit"`

	// Delay and Jitter pause before each article fetch (low-detection mode).
	Delay  time.Duration `yaml:"delay"`
	Jitter time.Duration `yaml:"jitter"`

	Headers map[string]string `yaml:"headers"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.IndexURL != "" {
		if !strings.Contains(s.IndexURL, KeyPlaceholder) {
			return Errorf(EINVALID, "source %q: index URL must contain %s", s.Name, KeyPlaceholder)
		}
		if s.Keys == "" {
			return Errorf(EINVALID, "source %q: keys required with an index URL", s.Name)
		}
		if s.IndexLinkSelector == "" {
			return Errorf(EINVALID, "source %q: index link selector required with an index URL", s.Name)
		}
		u, err := url.Parse(strings.ReplaceAll(s.IndexURL, KeyPlaceholder, "a"))
		if err != nil || !u.IsAbs() {
			return Errorf(EMALFORMEDURL, "source %q: index URL is not absolute: %q", s.Name, s.IndexURL)
		}
	}
	if s.LinkPathPattern != "" {
		if _, err := regexp.Compile(s.LinkPathPattern); err != nil {
			return Errorf(EINVALID, "source %q: invalid link path pattern: %v", s.Name, err)
		}
	}
	if s.MinParagraphLength < 0 || s.LinkLimit < 0 || s.Delay < 0 || s.Jitter < 0 {
		return Errorf(EINVALID, "source %q: negative limits are not allowed", s.Name)
	}
	return nil
}

// Crawlable reports whether the source has an alphabetical index.
func (s *Source) Crawlable() bool {
	return s.IndexURL != ""
}

// IndexURLFor returns the index page URL for key.
func (s *Source) IndexURLFor(key string) string {
	return strings.ReplaceAll(s.IndexURL, KeyPlaceholder, key)
}

// KeySpace returns the keys in crawl order.
func (s *Source) KeySpace() []string {
	keys := make([]string, 0, len(s.Keys))
	for _, r := range s.Keys {
		keys = append(keys, string(r))
	}
	return keys
}

// MinLength returns the effective paragraph length threshold.
func (s *Source) MinLength() int {
	if s.MinParagraphLength > 0 {
		return s.MinParagraphLength
	}
	return s.Strictness.MinLength()
}

// SourceDetector identifies the source family of a page.
// Returns FamilyUniversal when the family cannot be determined.
type SourceDetector interface {
	Detect(body []byte, pageURL string) Family
}

// SourceResolver picks the source profile for a page fetched in
// single-URL mode. It never returns nil; unknown pages get the universal
// profile.
type SourceResolver interface {
	Resolve(body []byte, pageURL string) *Source
}
