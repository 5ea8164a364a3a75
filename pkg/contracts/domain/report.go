package domain

import (
	"fmt"
	"strings"
)

// ExportFormat defines the output format of an export
type ExportFormat string

const (
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatJSON  ExportFormat = "json"
	ExportFormatPDF   ExportFormat = "pdf"
)

// ParseExportFormat normalizes a user supplied format name. Unknown names are
// rejected here; declared but unimplemented formats are rejected by the exporter.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportFormatExcel, ExportFormatCSV, ExportFormatJSON, ExportFormatPDF:
		return f, nil
	case "xlsx":
		return ExportFormatExcel, nil
	case "":
		return ExportFormatExcel, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ExportMetadata describes a rendered export
type ExportMetadata struct {
	QuestionnaireID string       `json:"questionnaire_id"`
	Format          ExportFormat `json:"format"`
	FileName        string       `json:"file_name"`
	ContentType     string       `json:"content_type"`
	RecordCount     int          `json:"record_count"`
	SizeBytes       int          `json:"size_bytes"`
	Digest          string       `json:"digest"`
}
