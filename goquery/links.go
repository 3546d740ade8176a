package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medcrawl"
)

// DefaultLinkSelector matches every anchor with an href.
const DefaultLinkSelector = "a[href]"

// LinkRule selects and normalizes the links of a page.
type LinkRule struct {
	Selector string
	// PathPattern, when non-nil, must match the path of a resolved link.
	PathPattern *regexp.Regexp
}

// NewLinkRule compiles a rule. An empty selector matches every anchor and
// an empty pattern matches every path.
func NewLinkRule(selector, pathPattern string) (*LinkRule, error) {
	if selector == "" {
		selector = DefaultLinkSelector
	}
	rule := &LinkRule{Selector: selector}
	if pathPattern != "" {
		re, err := regexp.Compile(pathPattern)
		if err != nil {
			return nil, medcrawl.Errorf(medcrawl.EINVALID, "invalid link path pattern: %v", err)
		}
		rule.PathPattern = re
	}
	return rule, nil
}

// Extract returns the links inside scope, resolved against pageURL.
// Links are deduplicated by absolute URL keeping the first occurrence, so
// the result follows document order. Links pointing back at pageURL or any
// of the exclude URLs are dropped, as are links without a label.
func (r *LinkRule) Extract(scope *goquery.Selection, pageURL string, exclude ...string) ([]medcrawl.Link, error) {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return nil, medcrawl.Errorf(medcrawl.EMALFORMEDURL, "invalid page URL: %q", pageURL)
	}

	self := map[string]bool{withoutFragment(base): true}
	for _, raw := range exclude {
		if u, err := url.Parse(raw); err == nil {
			self[withoutFragment(u)] = true
		}
	}

	seen := make(map[string]bool)
	var links []medcrawl.Link
	scope.Find(r.Selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved, ok := resolveURL(base, href)
		if !ok || self[resolved.String()] {
			return
		}
		if r.PathPattern != nil && !r.PathPattern.MatchString(resolved.Path) {
			return
		}

		label := linkLabel(sel)
		if label == "" {
			return
		}

		abs := resolved.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, medcrawl.Link{Label: label, URL: abs})
	})
	return links, nil
}

// resolveURL resolves href against base and strips the fragment.
// Only http and https results are accepted.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	if resolved.Host == "" {
		return nil, false
	}
	return resolved, true
}

func withoutFragment(u *url.URL) string {
	v := *u
	v.Fragment = ""
	v.RawFragment = ""
	return v.String()
}

// linkLabel prefers the anchor text and falls back to its title and
// aria-label attributes.
func linkLabel(sel *goquery.Selection) string {
	if label := normalizeText(textOf(sel)); label != "" {
		return label
	}
	for _, attr := range []string{"title", "aria-label"} {
		if v, ok := sel.Attr(attr); ok {
			if label := normalizeText(v); label != "" {
				return label
			}
		}
	}
	return ""
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
