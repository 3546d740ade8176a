package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/fwojciec/medcrawl/mock"
	medslog "github.com/fwojciec/medcrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExporter_Export(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Exporter{
		ExportFn: func([]*medcrawl.Record) ([]byte, error) { return []byte("[]\n"), nil },
		FormatFn: func() medcrawl.Format { return medcrawl.FormatJSON },
	}

	e := medslog.NewLoggingExporter(inner, logger)
	data, err := e.Export([]*medcrawl.Record{{Key: "A"}})

	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	assert.Equal(t, medcrawl.FormatJSON, e.Format())
	output := buf.String()
	assert.Contains(t, output, "msg=export")
	assert.Contains(t, output, "format=json")
	assert.Contains(t, output, "records=1")
	assert.Contains(t, output, "bytes=3")
}
