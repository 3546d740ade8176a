package medcrawl_test

import (
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatRecords(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no records", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, medcrawl.FormatRecords(nil, 0))
	})

	t.Run("formats key, title, url and body", func(t *testing.T) {
		t.Parallel()

		records := []*medcrawl.Record{
			{Key: "a", Title: "Asma", Body: "El asma es una enfermedad.", SourceURL: "https://medlineplus.gov/spanish/asthma.html"},
		}

		result := medcrawl.FormatRecords(records, 0)

		assert.Equal(t, "## [A] Asma\nhttps://medlineplus.gov/spanish/asthma.html\nEl asma es una enfermedad.", result)
	})

	t.Run("separates records with blank lines", func(t *testing.T) {
		t.Parallel()

		records := []*medcrawl.Record{
			{Key: "a", Title: "Uno", Body: "x", SourceURL: "https://example.com/1"},
			{Key: "b", Title: "Dos", Body: "y", SourceURL: "https://example.com/2"},
		}

		result := medcrawl.FormatRecords(records, 0)

		assert.Contains(t, result, "x\n\n## [B] Dos")
	})

	t.Run("shortens long bodies by runes", func(t *testing.T) {
		t.Parallel()

		records := []*medcrawl.Record{
			{Key: "c", Title: "Cáncer", Body: "ñññññññññññ", SourceURL: "https://example.com/c"},
		}

		result := medcrawl.FormatRecords(records, 4)

		assert.Contains(t, result, "\nññññ...")
	})

	t.Run("falls back to source URL when title is empty", func(t *testing.T) {
		t.Parallel()

		records := []*medcrawl.Record{{Key: "d", Body: "z", SourceURL: "https://example.com/d"}}

		result := medcrawl.FormatRecords(records, 0)

		assert.Contains(t, result, "## [D] https://example.com/d")
	})
}

func TestFormatLinks(t *testing.T) {
	t.Parallel()

	links := []medcrawl.Link{
		{Label: "Asma", URL: "https://example.com/asma"},
		{Label: "Bronquitis", URL: "https://example.com/bronquitis"},
	}

	result := medcrawl.FormatLinks(links)

	assert.Equal(t, "  1. Asma\n     https://example.com/asma\n  2. Bronquitis\n     https://example.com/bronquitis\n", result)
}
