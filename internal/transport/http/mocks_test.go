package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveypulse/internal/exporter"
	"surveypulse/internal/services"
	"surveypulse/pkg/contracts/domain"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) AnalyzeText(ctx context.Context, text string) domain.TextSentiment {
	return m.Called(ctx, text).Get(0).(domain.TextSentiment)
}

func (m *MockAnalyticsService) ScoreQuality(ctx context.Context, req services.QualityRequest) domain.QualityResult {
	return m.Called(ctx, req).Get(0).(domain.QualityResult)
}

func (m *MockAnalyticsService) Analyze(ctx context.Context, questionnaire *domain.Questionnaire, responses []domain.Response) (*domain.AnalyticsBundle, error) {
	args := m.Called(ctx, questionnaire, responses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsBundle), args.Error(1)
}

func (m *MockAnalyticsService) AnalyzeQuestionnaire(ctx context.Context, questionnaireID string, dr domain.DateRange) (*domain.AnalyticsBundle, error) {
	args := m.Called(ctx, questionnaireID, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsBundle), args.Error(1)
}

func (m *MockAnalyticsService) Insights(ctx context.Context, questionnaireID string, dr domain.DateRange) (*services.InsightsReport, error) {
	args := m.Called(ctx, questionnaireID, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.InsightsReport), args.Error(1)
}

func (m *MockAnalyticsService) GenerateInsights(ctx context.Context, bundle *domain.AnalyticsBundle) domain.InsightsBundle {
	return m.Called(ctx, bundle).Get(0).(domain.InsightsBundle)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportQuestionnaire(ctx context.Context, questionnaireID, format string, dr domain.DateRange) (*exporter.Result, error) {
	args := m.Called(ctx, questionnaireID, format, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exporter.Result), args.Error(1)
}

func (m *MockExportService) Export(ctx context.Context, format string, questionnaire *domain.Questionnaire, responses []domain.Response) (*exporter.Result, error) {
	args := m.Called(ctx, format, questionnaire, responses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exporter.Result), args.Error(1)
}
