package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zeebo/blake3"

	"surveypulse/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned for formats without a renderer
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Content types of rendered exports
const (
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV   = "text/csv; charset=utf-8"
	ContentTypeJSON  = "application/json"
)

// Options configures rendering
type Options struct {
	CSVBOM         bool
	MaxColumnWidth int
}

// Result is a rendered export
type Result struct {
	Format      domain.ExportFormat
	Content     []byte
	ContentType string
	FileName    string
	RecordCount int
	Digest      string
}

// Metadata describes the result without its content
func (r *Result) Metadata(questionnaireID string) domain.ExportMetadata {
	return domain.ExportMetadata{
		QuestionnaireID: questionnaireID,
		Format:          r.Format,
		FileName:        r.FileName,
		ContentType:     r.ContentType,
		RecordCount:     r.RecordCount,
		SizeBytes:       len(r.Content),
		Digest:          r.Digest,
	}
}

// Exporter renders response sets in the supported formats
type Exporter struct {
	options Options
	csv     *CSVWriter
	logger  *slog.Logger
}

// New creates an exporter
func New(options Options, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if options.MaxColumnWidth <= 0 || options.MaxColumnWidth > DefaultMaxColumnWidth {
		options.MaxColumnWidth = DefaultMaxColumnWidth
	}
	return &Exporter{
		options: options,
		csv:     NewCSVWriter(nil, logger),
		logger:  logger.With(slog.String("component", "exporter")),
	}
}

// Export renders responses in the requested format. Excel output carries a
// Responses sheet and an Analytics sheet built from stats; CSV carries the
// response table only; JSON passes the response records through unchanged.
func (e *Exporter) Export(format domain.ExportFormat, responses []domain.Response, questionnaire *domain.Questionnaire, stats domain.ResponseStats) (*Result, error) {
	var (
		content     []byte
		contentType string
		ext         string
		err         error
	)

	switch format {
	case domain.ExportFormatExcel:
		content, err = RenderWorkbook(e.options.MaxColumnWidth,
			BuildResponseTable(responses, questionnaire),
			BuildSummaryTable(stats))
		contentType, ext = ContentTypeExcel, "xlsx"
	case domain.ExportFormatCSV:
		content, err = e.renderCSV(BuildResponseTable(responses, questionnaire))
		contentType, ext = ContentTypeCSV, "csv"
	case domain.ExportFormatJSON:
		content, err = renderJSON(responses)
		contentType, ext = ContentTypeJSON, "json"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	result := &Result{
		Format:      format,
		Content:     content,
		ContentType: contentType,
		FileName:    FileName(questionnaire, ext),
		RecordCount: len(responses),
		Digest:      Digest(content),
	}

	e.logger.Debug("Export rendered",
		slog.String("format", string(format)),
		slog.Int("record_count", result.RecordCount),
		slog.Int("size_bytes", len(content)))

	return result, nil
}

func (e *Exporter) renderCSV(table *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.csv.Write(&buf, TableOptions(table, e.options.CSVBOM)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON writes the source records unchanged apart from indentation
func renderJSON(responses []domain.Response) ([]byte, error) {
	records := make([]json.RawMessage, 0, len(responses))
	for _, r := range responses {
		rec, err := r.Record()
		if err != nil {
			return nil, fmt.Errorf("encode response %s: %w", r.ID, err)
		}
		records = append(records, rec)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FileName derives a stable download name for an export
func FileName(questionnaire *domain.Questionnaire, ext string) string {
	id := "survey"
	if questionnaire != nil && questionnaire.ID != "" {
		id = questionnaire.ID
	}
	return fmt.Sprintf("%s_responses.%s", id, ext)
}

// Digest returns the hex blake3 digest of content
func Digest(content []byte) string {
	hasher := blake3.New()
	_, _ = hasher.Write(content)
	return fmt.Sprintf("%x", hasher.Sum(nil))
}
