package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medcrawl"
)

var _ medcrawl.SourceDetector = (*Detector)(nil)

// hostFamilies maps registrable domains to families. Subdomains match.
var hostFamilies = map[string]medcrawl.Family{
	"medlineplus.gov":  medcrawl.FamilyMedlinePlus,
	"mayoclinic.org":   medcrawl.FamilyMayo,
	"msdmanuals.com":   medcrawl.FamilyMSD,
	"merckmanuals.com": medcrawl.FamilyMSD,
	"manualesmsd.com":  medcrawl.FamilyMSD,
}

// Detector identifies the source family of a medical page.
// It checks the host first and falls back to markup markers that survive
// mirrors and proxies: the site name meta tag and family-specific ids.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the family of the page, or FamilyUniversal if it cannot
// be determined.
func (d *Detector) Detect(body []byte, pageURL string) medcrawl.Family {
	if family := d.detectFromHost(pageURL); family != medcrawl.FamilyUniversal {
		return family
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return medcrawl.FamilyUniversal
	}

	if family := d.detectFromSiteName(doc); family != medcrawl.FamilyUniversal {
		return family
	}

	// MedlinePlus topic pages wrap the summary in a stable id.
	if d.hasSelector(doc, "#topic-summary") || d.hasSelector(doc, "#mplus-content") {
		return medcrawl.FamilyMedlinePlus
	}

	// Professional and consumer MSD topics share the topic container.
	if d.hasSelector(doc, "[data-testid='topic-main-content']") || d.hasSelector(doc, ".topic__content") {
		return medcrawl.FamilyMSD
	}

	if d.hasSelector(doc, ".content[data-sc-name]") || d.hasSelector(doc, "#main-content .content") {
		return medcrawl.FamilyMayo
	}

	return medcrawl.FamilyUniversal
}

func (d *Detector) detectFromHost(pageURL string) medcrawl.Family {
	u, err := url.Parse(pageURL)
	if err != nil {
		return medcrawl.FamilyUniversal
	}
	host := strings.ToLower(u.Hostname())
	for domain, family := range hostFamilies {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return family
		}
	}
	return medcrawl.FamilyUniversal
}

// detectFromSiteName checks the og:site_name and application-name meta tags.
func (d *Detector) detectFromSiteName(doc *goquery.Document) medcrawl.Family {
	name := ""
	doc.Find("meta[property='og:site_name'], meta[name='application-name']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists && name == "" {
			name = strings.ToLower(content)
		}
	})

	switch {
	case name == "":
		return medcrawl.FamilyUniversal
	case strings.Contains(name, "medlineplus"):
		return medcrawl.FamilyMedlinePlus
	case strings.Contains(name, "mayo clinic"):
		return medcrawl.FamilyMayo
	case strings.Contains(name, "msd"), strings.Contains(name, "merck manual"):
		return medcrawl.FamilyMSD
	}
	return medcrawl.FamilyUniversal
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
