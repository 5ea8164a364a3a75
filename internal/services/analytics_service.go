package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"surveypulse/internal/infrastructure"
	"surveypulse/internal/insights"
	"surveypulse/internal/quality"
	"surveypulse/internal/statistics"
	"surveypulse/internal/textanalysis"
	"surveypulse/pkg/contracts/domain"
)

// QualityRequest carries the inputs of a single response quality check
type QualityRequest struct {
	CompletionTime float64       `json:"completion_time" validate:"gte=0"`
	QuestionCount  int           `json:"question_count" validate:"gte=0"`
	Answers        []interface{} `json:"answers"`
}

// InsightsReport pairs insights with the analytics they were derived from
type InsightsReport struct {
	Analytics *domain.AnalyticsBundle `json:"analytics"`
	Insights  domain.InsightsBundle   `json:"insights"`
}

// AnalyticsService computes statistics, quality metrics and insights
type AnalyticsService struct {
	source    ResponseSource
	analyzer  *textanalysis.Analyzer
	publisher InsightsPublisher
	workers   int
	tracer    trace.Tracer
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
	now       func() time.Time

	publishing sync.WaitGroup
}

// NewAnalyticsService creates an analytics service. publisher may be nil.
func NewAnalyticsService(source ResponseSource, analyzer *textanalysis.Analyzer, publisher InsightsPublisher, workers int, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &AnalyticsService{
		source:    source,
		analyzer:  analyzer,
		publisher: publisher,
		workers:   workers,
		tracer:    otel.Tracer(infrastructure.MeterName),
		logger:    logger.With(slog.String("component", "analytics_service")),
		now:       time.Now,
	}
}

// WithTelemetry attaches a tracer and business metrics
func (s *AnalyticsService) WithTelemetry(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *AnalyticsService {
	if tracer != nil {
		s.tracer = tracer
	}
	s.metrics = metrics
	return s
}

// AnalyzeText analyzes a single freeform text
func (s *AnalyticsService) AnalyzeText(ctx context.Context, text string) domain.TextSentiment {
	result := s.analyzer.AnalyzeText(text)
	if s.metrics != nil {
		s.metrics.TextAnalysesTotal.Add(ctx, 1)
	}
	s.logger.DebugContext(ctx, "text analyzed",
		slog.String("engine", s.analyzer.Engine().Name()),
		slog.String("overall", result.Overall),
		slog.Int("word_count", result.WordCount))
	return result
}

// ScoreQuality scores a single response
func (s *AnalyticsService) ScoreQuality(ctx context.Context, req QualityRequest) domain.QualityResult {
	result := quality.ScoreResponse(req.CompletionTime, req.QuestionCount, req.Answers)
	s.logger.DebugContext(ctx, "response quality scored",
		slog.Int("score", result.Score),
		slog.Bool("suspicious", result.IsSuspicious))
	return result
}

// AnalyzeQuestionnaire loads a questionnaire and its responses and analyzes
// the responses submitted inside dr
func (s *AnalyticsService) AnalyzeQuestionnaire(ctx context.Context, questionnaireID string, dr domain.DateRange) (*domain.AnalyticsBundle, error) {
	questionnaire, responses, err := s.load(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, questionnaire, statistics.FilterByDateRange(responses, dr))
}

// Analyze builds the analytics bundle of a response set
func (s *AnalyticsService) Analyze(ctx context.Context, questionnaire *domain.Questionnaire, responses []domain.Response) (bundle *domain.AnalyticsBundle, err error) {
	if questionnaire == nil {
		return nil, fmt.Errorf("%w: questionnaire is required", ErrInvalidInput)
	}

	ctx, span := s.tracer.Start(ctx, "analytics.analyze",
		trace.WithAttributes(
			attribute.String("questionnaire.id", questionnaire.ID),
			attribute.Int("questionnaire.questions", len(questionnaire.Questions)),
			attribute.Int("responses.count", len(responses)),
		))
	defer span.End()

	start := s.now()
	defer func() {
		suspicious := 0
		if bundle != nil {
			suspicious = bundle.Quality.SuspiciousResponses
		}
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
		infrastructure.RecordAnalyticsRun(ctx, s.metrics, questionnaire.ID, len(responses), suspicious, time.Since(start), err)
	}()

	questions, err := s.breakdown(ctx, questionnaire, responses)
	if err != nil {
		return nil, err
	}

	_, qualityMetrics := quality.ScoreAll(responses, len(questionnaire.Questions))

	bundle = &domain.AnalyticsBundle{
		QuestionnaireID: questionnaire.ID,
		Stats:           statistics.Aggregate(responses),
		Questions:       questions,
		Quality:         qualityMetrics,
		GeneratedAt:     s.now().UTC(),
	}

	s.logger.InfoContext(ctx, "analytics computed",
		slog.String("questionnaire_id", questionnaire.ID),
		slog.Int("responses", bundle.Stats.Total),
		slog.Int("completed", bundle.Stats.Completed),
		slog.Int("suspicious", qualityMetrics.SuspiciousResponses))

	return bundle, nil
}

// breakdown analyzes every question over the completed responses, fanning
// out across at most s.workers goroutines. Results keep questionnaire order.
func (s *AnalyticsService) breakdown(ctx context.Context, questionnaire *domain.Questionnaire, responses []domain.Response) ([]domain.QuestionAnalytics, error) {
	completed := make([]domain.Response, 0, len(responses))
	for _, r := range responses {
		if r.IsCompleted() {
			completed = append(completed, r)
		}
	}

	answers := statistics.CollectAnswers(questionnaire, completed)
	results := make([]domain.QuestionAnalytics, len(answers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, qa := range answers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = statistics.AnalyzeQuestion(qa, len(completed), s.analyzer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("question breakdown cancelled: %w", err)
	}

	return results, nil
}

// Insights analyzes a stored questionnaire and derives its insights
func (s *AnalyticsService) Insights(ctx context.Context, questionnaireID string, dr domain.DateRange) (*InsightsReport, error) {
	bundle, err := s.AnalyzeQuestionnaire(ctx, questionnaireID, dr)
	if err != nil {
		return nil, err
	}
	return &InsightsReport{
		Analytics: bundle,
		Insights:  s.GenerateInsights(ctx, bundle),
	}, nil
}

// GenerateInsights derives insights from a bundle and hands them to the
// publisher in the background. Publishing never affects the result.
func (s *AnalyticsService) GenerateInsights(ctx context.Context, bundle *domain.AnalyticsBundle) domain.InsightsBundle {
	_, span := s.tracer.Start(ctx, "analytics.insights",
		trace.WithAttributes(attribute.String("questionnaire.id", bundle.QuestionnaireID)))
	result := insights.Generate(*bundle)
	span.SetAttributes(
		attribute.Int("insights.findings", len(result.Findings)),
		attribute.Int("insights.recommendations", len(result.Recommendations)))
	span.End()

	if s.publisher != nil {
		s.publishing.Add(1)
		go s.publish(context.WithoutCancel(ctx), bundle.QuestionnaireID, result)
	}

	return result
}

func (s *AnalyticsService) publish(ctx context.Context, questionnaireID string, result domain.InsightsBundle) {
	defer s.publishing.Done()

	if err := s.publisher.Publish(ctx, questionnaireID, result); err != nil {
		if s.metrics != nil {
			s.metrics.InsightsPublishErrors.Add(ctx, 1)
		}
		s.logger.WarnContext(ctx, "failed to publish insights",
			slog.String("questionnaire_id", questionnaireID),
			slog.String("error", err.Error()))
	}
}

// Wait blocks until in-flight insight publications have finished
func (s *AnalyticsService) Wait() {
	s.publishing.Wait()
}

func (s *AnalyticsService) load(ctx context.Context, questionnaireID string) (*domain.Questionnaire, []domain.Response, error) {
	if questionnaireID == "" {
		return nil, nil, fmt.Errorf("%w: questionnaire id is required", ErrInvalidInput)
	}

	questionnaire, err := s.source.Questionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questionnaire %s: %w", questionnaireID, err)
	}
	responses, err := s.source.Responses(ctx, questionnaireID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load responses of %s: %w", questionnaireID, err)
	}
	return questionnaire, responses, nil
}
