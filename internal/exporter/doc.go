// Package exporter flattens survey responses into tabular form and renders
// them as a two-sheet workbook, CSV or JSON.
//
// Table: ordered dynamic-column model. Columns appear in first-seen order
// and every row is a column label to cell mapping.
//
// CSVWriter: CSV serialization with an optional UTF-8 BOM for Excel.
//
// Exporter: selects the renderer for an export format and digests the
// rendered content.
//
// Example usage:
//
//	exp := exporter.New(exporter.Options{CSVBOM: true}, logger)
//	result, err := exp.Export(domain.ExportFormatCSV, responses, questionnaire, stats)
//	if errors.Is(err, exporter.ErrUnsupportedFormat) {
//		// reject the request
//	}
package exporter
