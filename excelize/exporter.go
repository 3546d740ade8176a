// Package excelize exports records as an xlsx workbook.
package excelize

import (
	"unicode/utf8"

	"github.com/fwojciec/medcrawl"
	"github.com/xuri/excelize/v2"
)

var _ medcrawl.Exporter = (*Exporter)(nil)

// SheetName is the name of the single worksheet.
const SheetName = "Results"

// HeaderFill is the background color of the header row.
const HeaderFill = "DDEBF7"

// columnWidths are in Excel character units, in medcrawl.Columns order.
var columnWidths = []float64{8, 40, 100, 60}

// Exporter writes one worksheet with a styled header row and one row per
// record.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Format implements medcrawl.Exporter.
func (e *Exporter) Format() medcrawl.Format {
	return medcrawl.FormatXLSX
}

// Export implements medcrawl.Exporter. Cells longer than Excel's limit are
// truncated.
func (e *Exporter) Export(records []*medcrawl.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderFill}},
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}
	body, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, 1, medcrawl.Columns); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(medcrawl.Columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, header); err != nil {
		return nil, err
	}

	for i, r := range records {
		if err := setRow(f, i+2, r.Row()); err != nil {
			return nil, err
		}
	}
	if len(records) > 0 {
		last, err := excelize.CoordinatesToCellName(len(medcrawl.Columns), len(records)+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, "A2", last, body); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = truncate(v)
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:excelize.TotalCellChars])
}
