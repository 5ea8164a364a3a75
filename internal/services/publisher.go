package services

import (
	"context"
	"log/slog"

	"surveypulse/pkg/contracts/domain"
)

// InsightsPublisher delivers generated insights to an external sink
type InsightsPublisher interface {
	Publish(ctx context.Context, questionnaireID string, insights domain.InsightsBundle) error
}

// LogPublisher publishes insights as structured log records
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher writing to logger
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With(slog.String("component", "insights_publisher"))}
}

// Publish logs the insights bundle
func (p *LogPublisher) Publish(ctx context.Context, questionnaireID string, insights domain.InsightsBundle) error {
	p.logger.InfoContext(ctx, "insights published",
		slog.String("questionnaire_id", questionnaireID),
		slog.String("summary", insights.Summary),
		slog.Int("findings", len(insights.Findings)),
		slog.Int("recommendations", len(insights.Recommendations)),
		slog.String("sentiment", insights.SentimentOverview.Overall))
	return nil
}
