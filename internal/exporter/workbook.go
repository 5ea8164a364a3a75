package exporter

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxColumnWidth caps auto-sized columns, in character widths
const DefaultMaxColumnWidth = 50

const columnPadding = 2

// ColumnWidths computes the auto-size width of each column: the longest
// rendered value including the header, plus padding, capped at maxWidth.
func ColumnWidths(table *Table, maxWidth int) []float64 {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxColumnWidth
	}

	columns := table.Columns()
	longest := make([]int, len(columns))
	for i, c := range columns {
		longest[i] = utf8.RuneCountInString(c)
	}
	for _, record := range table.Records() {
		for i, v := range record {
			if n := utf8.RuneCountInString(v); n > longest[i] {
				longest[i] = n
			}
		}
	}

	widths := make([]float64, len(columns))
	for i, n := range longest {
		w := n + columnPadding
		if w > maxWidth {
			w = maxWidth
		}
		widths[i] = float64(w)
	}
	return widths
}

// RenderWorkbook renders the tables as sheets of one workbook, in order
func RenderWorkbook(maxWidth int, tables ...*Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to render")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", table.Name, err)
		}

		if err := writeSheet(f, table, maxWidth); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", table.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, table *Table, maxWidth int) error {
	columns := table.Columns()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}

	for r := 0; r < table.Len(); r++ {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			if v := table.Cell(r, c); v != nil {
				row[i] = v
			} else {
				row[i] = ""
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range ColumnWidths(table, maxWidth) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(table.Name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}
