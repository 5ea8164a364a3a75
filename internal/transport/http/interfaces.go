package http

import (
	"context"

	"surveypulse/internal/exporter"
	"surveypulse/internal/services"
	"surveypulse/pkg/contracts/domain"
)

// AnalyticsService is the analytics behaviour the handlers depend on
type AnalyticsService interface {
	AnalyzeText(ctx context.Context, text string) domain.TextSentiment
	ScoreQuality(ctx context.Context, req services.QualityRequest) domain.QualityResult
	Analyze(ctx context.Context, questionnaire *domain.Questionnaire, responses []domain.Response) (*domain.AnalyticsBundle, error)
	AnalyzeQuestionnaire(ctx context.Context, questionnaireID string, dr domain.DateRange) (*domain.AnalyticsBundle, error)
	Insights(ctx context.Context, questionnaireID string, dr domain.DateRange) (*services.InsightsReport, error)
	GenerateInsights(ctx context.Context, bundle *domain.AnalyticsBundle) domain.InsightsBundle
}

// ExportService is the export behaviour the handlers depend on
type ExportService interface {
	ExportQuestionnaire(ctx context.Context, questionnaireID, format string, dr domain.DateRange) (*exporter.Result, error)
	Export(ctx context.Context, format string, questionnaire *domain.Questionnaire, responses []domain.Response) (*exporter.Result, error)
}
