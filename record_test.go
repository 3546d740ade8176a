package medcrawl_test

import (
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Parallel()

	r := medcrawl.NewRecord("a", "  Asma ", []string{"Primer párrafo.", "Segundo párrafo."}, "https://medlineplus.gov/spanish/asthma.html")

	assert.Equal(t, "a", r.Key)
	assert.Equal(t, "Asma", r.Title)
	assert.Equal(t, "Primer párrafo.\n\nSegundo párrafo.", r.Body)
	assert.Equal(t, "https://medlineplus.gov/spanish/asthma.html", r.SourceURL)
	require.NoError(t, r.Validate())
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record medcrawl.Record
	}{
		{"empty title", medcrawl.Record{Title: " ", Body: "b", SourceURL: "https://example.com/x"}},
		{"empty body", medcrawl.Record{Title: "t", Body: "", SourceURL: "https://example.com/x"}},
		{"relative url", medcrawl.Record{Title: "t", Body: "b", SourceURL: "/x/y"}},
		{"non-http url", medcrawl.Record{Title: "t", Body: "b", SourceURL: "mailto:a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.record.Validate()

			require.Error(t, err)
			assert.Equal(t, medcrawl.EINVALID, medcrawl.ErrorCode(err))
		})
	}
}

func TestRecord_Row(t *testing.T) {
	t.Parallel()

	r := &medcrawl.Record{Key: "k", Title: "t", Body: "b", SourceURL: "https://example.com"}

	assert.Equal(t, []string{"k", "t", "b", "https://example.com"}, r.Row())
	assert.Len(t, medcrawl.Columns, len(r.Row()))
}
