package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"surveypulse/internal/config"
	"surveypulse/internal/exporter"
	"surveypulse/internal/infrastructure"
	"surveypulse/internal/statistics"
	"surveypulse/pkg/contracts/domain"
)

// ExportService renders stored or inline response sets
type ExportService struct {
	source   ResponseSource
	exporter *exporter.Exporter
	paths    *config.Paths
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewExportService creates an export service. paths is only needed by Save.
func NewExportService(source ResponseSource, exp *exporter.Exporter, paths *config.Paths, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		source:   source,
		exporter: exp,
		paths:    paths,
		tracer:   otel.Tracer(infrastructure.MeterName),
		logger:   logger.With(slog.String("component", "export_service")),
	}
}

// WithTelemetry attaches a tracer and business metrics
func (s *ExportService) WithTelemetry(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *ExportService {
	if tracer != nil {
		s.tracer = tracer
	}
	s.metrics = metrics
	return s
}

// ExportQuestionnaire renders the stored responses of a questionnaire
// submitted inside dr
func (s *ExportService) ExportQuestionnaire(ctx context.Context, questionnaireID, format string, dr domain.DateRange) (*exporter.Result, error) {
	// Reject the format before touching the source.
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	questionnaire, err := s.source.Questionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questionnaire %s: %w", questionnaireID, err)
	}
	responses, err := s.source.Responses(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses of %s: %w", questionnaireID, err)
	}

	return s.render(ctx, f, questionnaire, statistics.FilterByDateRange(responses, dr))
}

// Export renders an inline response set
func (s *ExportService) Export(ctx context.Context, format string, questionnaire *domain.Questionnaire, responses []domain.Response) (*exporter.Result, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, f, questionnaire, responses)
}

func (s *ExportService) render(ctx context.Context, format domain.ExportFormat, questionnaire *domain.Questionnaire, responses []domain.Response) (*exporter.Result, error) {
	ctx, span := s.tracer.Start(ctx, "export.render",
		trace.WithAttributes(
			attribute.String("export.format", string(format)),
			attribute.Int("responses.count", len(responses)),
		))
	defer span.End()

	result, err := s.exporter.Export(format, responses, questionnaire, statistics.Aggregate(responses))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordExport(ctx, s.metrics, string(format), 0, err)
		s.logger.WarnContext(ctx, "export failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return nil, err
	}

	infrastructure.RecordExport(ctx, s.metrics, string(format), len(result.Content), nil)
	span.SetAttributes(attribute.Int("export.size_bytes", len(result.Content)))

	s.logger.InfoContext(ctx, "export rendered",
		slog.String("format", string(format)),
		slog.String("file_name", result.FileName),
		slog.Int("record_count", result.RecordCount),
		slog.String("digest", result.Digest))

	return result, nil
}

// Save writes a rendered export into the export directory and returns its path
func (s *ExportService) Save(ctx context.Context, result *exporter.Result) (string, error) {
	if s.paths == nil {
		return "", fmt.Errorf("%w: export directory not configured", ErrInvalidInput)
	}
	if err := s.paths.EnsureDirectories(); err != nil {
		return "", err
	}

	path := s.paths.ExportPath(result.FileName)
	if err := os.WriteFile(path, result.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export %s: %w", path, err)
	}

	s.logger.InfoContext(ctx, "export saved",
		slog.String("path", path),
		slog.Int("size_bytes", len(result.Content)))
	return path, nil
}

func parseFormat(format string) (domain.ExportFormat, error) {
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", exporter.ErrUnsupportedFormat, err)
	}
	if f == domain.ExportFormatPDF {
		return "", fmt.Errorf("%w: %s", exporter.ErrUnsupportedFormat, f)
	}
	return f, nil
}
