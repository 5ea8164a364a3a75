package insights

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/pkg/contracts/domain"
)

func bundle(total, completed int, rate, avg float64) domain.AnalyticsBundle {
	return domain.AnalyticsBundle{
		QuestionnaireID: "q-1",
		Stats: domain.ResponseStats{
			Total:                 total,
			Completed:             completed,
			CompletionRate:        rate,
			AverageCompletionTime: avg,
		},
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		bundle   domain.AnalyticsBundle
		contains []string
		excludes []string
	}{
		{
			name:     "excellent",
			bundle:   bundle(100, 85, 85, 240),
			contains: []string{"100 responses", "85 of them", "85.0%", "excellent", "Average completion time is 240 seconds."},
		},
		{
			name:     "good at boundary",
			bundle:   bundle(10, 8, 80, 0),
			contains: []string{"good completion rate"},
			excludes: []string{"excellent", "completion time is"},
		},
		{
			name:     "needs improvement",
			bundle:   bundle(10, 6, 60, 90),
			contains: []string{"improve response rates", "Average completion time is 90 seconds."},
		},
		{
			name:     "sub-minute average stays in seconds",
			bundle:   bundle(10, 9, 90, 45.5),
			contains: []string{"Average completion time is 45.5 seconds."},
			excludes: []string{"minutes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summary(tt.bundle)
			for _, s := range tt.contains {
				assert.Contains(t, summary, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, summary, s)
			}
		})
	}
}

func TestFindings(t *testing.T) {
	tests := []struct {
		name       string
		bundle     domain.AnalyticsBundle
		suspicious int
		want       []string
	}{
		{"high engagement and quick", bundle(100, 95, 95, 45), 0, []string{"High engagement", "too simple"}},
		{"design issue and long", bundle(100, 40, 40, 900), 0, []string{"survey design issues", "Long completion time"}},
		{"nothing notable", bundle(100, 75, 75, 200), 0, nil},
		{"suspicious share", bundle(10, 8, 80, 200), 3, []string{"Many suspicious responses"}},
		{"suspicious share at limit", bundle(10, 8, 80, 200), 2, nil},
		{"zero average counts as quick", bundle(10, 8, 80, 0), 0, []string{"too simple"}},
		{"just under a minute", bundle(100, 75, 75, 59.9), 0, []string{"too simple"}},
		{"exactly a minute", bundle(100, 75, 75, 60), 0, nil},
		{"empty response set", bundle(0, 0, 0, 0), 0, []string{"survey design issues", "too simple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.bundle
			b.Quality.SuspiciousResponses = tt.suspicious

			findings := Findings(b)
			require.Len(t, findings, len(tt.want))
			for i, w := range tt.want {
				assert.Contains(t, findings[i], w)
			}
		})
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("low completion and slow", func(t *testing.T) {
		recs := Recommendations(bundle(100, 50, 50, 400))
		require.Len(t, recs, 4)
		assert.Contains(t, recs[0], "shortening")
		assert.Contains(t, recs[1], "wording")
		assert.Contains(t, recs[2], "multiple pages")
		assert.Contains(t, recs[3], "Simplify question types")
	})

	t.Run("healthy survey", func(t *testing.T) {
		assert.Empty(t, Recommendations(bundle(100, 90, 90, 120)))
	})

	t.Run("low response questions", func(t *testing.T) {
		b := bundle(10, 10, 100, 120)
		long := strings.Repeat("x", 80)
		b.Questions = []domain.QuestionAnalytics{
			{QuestionText: "Answered by all", TotalResponses: 10},
			{QuestionText: "At threshold", TotalResponses: 8},
			{QuestionText: long, TotalResponses: 7},
			{QuestionText: "Second low", TotalResponses: 2},
			{QuestionText: "Third low", TotalResponses: 0},
			{QuestionText: "Fourth low", TotalResponses: 1},
		}

		recs := Recommendations(b)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], strings.Repeat("x", 50)+", Second low, Third low")
		assert.NotContains(t, recs[0], strings.Repeat("x", 51))
		assert.NotContains(t, recs[0], "Fourth low")
		assert.NotContains(t, recs[0], "At threshold")
	})
}

func textQuestion(pos, neu, neg float64) domain.QuestionAnalytics {
	return domain.QuestionAnalytics{
		QuestionType: domain.QuestionTypeTextLong,
		TextAnalysis: &domain.TextAnalysisResult{
			Sentiment: domain.SentimentDistribution{Positive: pos, Neutral: neu, Negative: neg},
		},
	}
}

func TestSentimentTrends(t *testing.T) {
	tests := []struct {
		name      string
		questions []domain.QuestionAnalytics
		want      string
	}{
		{"no text questions", []domain.QuestionAnalytics{{QuestionType: domain.QuestionTypeRating}}, domain.SentimentNeutral},
		{"positive majority", []domain.QuestionAnalytics{textQuestion(70, 20, 10), textQuestion(60, 30, 10)}, domain.SentimentPositive},
		{"negative majority", []domain.QuestionAnalytics{textQuestion(10, 20, 70)}, domain.SentimentNegative},
		{"exact tie stays neutral", []domain.QuestionAnalytics{textQuestion(50, 25, 25)}, domain.SentimentNeutral},
		{"plurality is not enough", []domain.QuestionAnalytics{textQuestion(45, 20, 35)}, domain.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SentimentTrends(tt.questions).Overall)
		})
	}

	overview := SentimentTrends([]domain.QuestionAnalytics{textQuestion(70, 20, 10), textQuestion(60, 30, 10)})
	assert.Equal(t, domain.SentimentDistribution{Positive: 130, Neutral: 50, Negative: 20}, overview.Distribution)
}

func TestGenerateIsDeterministic(t *testing.T) {
	b := bundle(20, 9, 45, 700)
	b.Quality.SuspiciousResponses = 5
	q := textQuestion(10, 10, 80)
	q.TotalResponses = 9
	b.Questions = []domain.QuestionAnalytics{q}

	first := Generate(b)
	second := Generate(b)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.SentimentNegative, first.SentimentOverview.Overall)
	assert.Len(t, first.Findings, 3)
	assert.Len(t, first.Recommendations, 4)
}
