package goquery_test

import (
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Detector implements medcrawl.SourceDetector at compile time.
var _ medcrawl.SourceDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("detects family from host", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDetector()

		assert.Equal(t, medcrawl.FamilyMedlinePlus, d.Detect(nil, "https://medlineplus.gov/spanish/asthma.html"))
		assert.Equal(t, medcrawl.FamilyMayo, d.Detect(nil, "https://www.mayoclinic.org/es/diseases-conditions/asthma"))
		assert.Equal(t, medcrawl.FamilyMSD, d.Detect(nil, "https://www.msdmanuals.com/es/professional"))
		assert.Equal(t, medcrawl.FamilyMSD, d.Detect(nil, "https://www.merckmanuals.com/professional"))
	})

	t.Run("does not match lookalike hosts", func(t *testing.T) {
		t.Parallel()

		d := goquery.NewDetector()

		assert.Equal(t, medcrawl.FamilyUniversal, d.Detect([]byte("<html></html>"), "https://notmedlineplus.gov/x"))
	})

	t.Run("detects family from site name meta tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:site_name" content="Mayo Clinic"></head><body></body></html>`

		family := goquery.NewDetector().Detect([]byte(html), "https://mirror.example.com/asma")

		assert.Equal(t, medcrawl.FamilyMayo, family)
	})

	t.Run("detects MedlinePlus from topic summary marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="topic-summary"><p>Resumen</p></div></body></html>`

		family := goquery.NewDetector().Detect([]byte(html), "https://mirror.example.com/asma")

		assert.Equal(t, medcrawl.FamilyMedlinePlus, family)
	})

	t.Run("detects MSD from topic container marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div data-testid="topic-main-content"><p>Angina</p></div></body></html>`

		family := goquery.NewDetector().Detect([]byte(html), "https://mirror.example.com/angina")

		assert.Equal(t, medcrawl.FamilyMSD, family)
	})

	t.Run("returns universal for unknown pages", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:site_name" content="Blog de salud"></head><body><p>Hola</p></body></html>`

		family := goquery.NewDetector().Detect([]byte(html), "https://blog.example.com/post")

		assert.Equal(t, medcrawl.FamilyUniversal, family)
	})
}
