package json_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/medcrawl"
	medjson "github.com/fwojciec/medcrawl/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	records := []*medcrawl.Record{
		{Key: "A", Title: "Asma & alergias", Body: "Primer párrafo.\n\nSegundo <párrafo>.", SourceURL: "https://medlineplus.gov/spanish/asthma.html?a=1&b=2"},
	}

	t.Run("writes an indented array without escaping", func(t *testing.T) {
		t.Parallel()

		data, err := medjson.NewExporter().Export(records)

		require.NoError(t, err)
		want := `[
  {
    "key": "A",
    "title": "Asma & alergias",
    "body": "Primer párrafo.\n\nSegundo <párrafo>.",
    "source_url": "https://medlineplus.gov/spanish/asthma.html?a=1&b=2"
  }
]
`
		assert.Equal(t, want, string(data))
	})

	t.Run("round-trips the field set", func(t *testing.T) {
		t.Parallel()

		data, err := medjson.NewExporter().Export(records)
		require.NoError(t, err)

		var got []*medcrawl.Record
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, records, got)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := medjson.NewExporter().Export(records)
		require.NoError(t, err)
		second, err := medjson.NewExporter().Export(records)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("writes an empty array for no records", func(t *testing.T) {
		t.Parallel()

		data, err := medjson.NewExporter().Export(nil)

		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}
