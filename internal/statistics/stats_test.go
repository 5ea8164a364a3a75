package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/pkg/contracts/domain"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name             string
		total, completed int
		want             float64
	}{
		{"no responses", 0, 0, 0},
		{"seven of ten", 10, 7, 70},
		{"all completed", 4, 4, 100},
		{"repeating fraction", 3, 1, 33.33},
		{"two thirds", 3, 2, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionRate(tt.total, tt.completed))
		})
	}
}

func TestAverageAndMedianTime(t *testing.T) {
	tests := []struct {
		name       string
		times      []float64
		wantAvg    float64
		wantMedian float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{42}, 42, 42},
		{"odd length unsorted", []float64{300, 100, 200}, 200, 200},
		{"even length", []float64{10, 40, 20, 30}, 25, 25},
		{"skewed", []float64{60, 70, 80, 1000}, 302.5, 75},
		{"rounded", []float64{1, 1, 2}, 1.33, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAvg, AverageTime(tt.times))
			assert.Equal(t, tt.wantMedian, MedianTime(tt.times))
		})
	}
}

func TestMedianTimeDoesNotReorderInput(t *testing.T) {
	times := []float64{3, 1, 2}
	MedianTime(times)
	assert.Equal(t, []float64{3, 1, 2}, times)
}

func response(id string, status domain.ResponseStatus, seconds float64) domain.Response {
	return domain.Response{
		ID:       id,
		Status:   status,
		Metadata: domain.ResponseMetadata{CompletionTime: seconds},
	}
}

func TestAggregate(t *testing.T) {
	responses := []domain.Response{
		response("r1", domain.ResponseStatusCompleted, 120),
		response("r2", domain.ResponseStatusCompleted, 240),
		response("r3", domain.ResponseStatusCompleted, 0),
		response("r4", domain.ResponseStatusInProgress, 30),
		response("r5", domain.ResponseStatusAbandoned, 5),
	}

	stats := Aggregate(responses)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 2, stats.Abandoned)
	assert.Equal(t, 60.0, stats.CompletionRate)
	assert.Equal(t, 180.0, stats.AverageCompletionTime)
	assert.Equal(t, 180.0, stats.MedianCompletionTime)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, domain.ResponseStats{}, Aggregate(nil))
}

func TestFilterByDateRange(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
		return &ts
	}
	submitted := func(id string, at *time.Time) domain.Response {
		return domain.Response{ID: id, Metadata: domain.ResponseMetadata{SubmittedAt: at}}
	}

	responses := []domain.Response{
		submitted("early", day(1)),
		submitted("from-edge", day(5)),
		submitted("inside", day(7)),
		submitted("to-edge", day(10)),
		submitted("late", day(20)),
		submitted("unsubmitted", nil),
	}

	ids := func(rs []domain.Response) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("unbounded keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByDateRange(responses, domain.DateRange{}), len(responses))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		got := FilterByDateRange(responses, domain.DateRange{From: day(5), To: day(10)})
		assert.Equal(t, []string{"from-edge", "inside", "to-edge"}, ids(got))
	})

	t.Run("open end", func(t *testing.T) {
		got := FilterByDateRange(responses, domain.DateRange{From: day(10)})
		assert.Equal(t, []string{"to-edge", "late"}, ids(got))
	})
}

type stubAnalyzer struct {
	seen [][]string
}

func (s *stubAnalyzer) AnalyzeTextSet(texts []string) domain.TextAnalysisResult {
	s.seen = append(s.seen, texts)
	return domain.TextAnalysisResult{WordCount: len(texts)}
}

func TestQuestionBreakdown(t *testing.T) {
	questionnaire := &domain.Questionnaire{
		ID: "q-1",
		Questions: []domain.QuestionDescriptor{
			{ID: "color", Type: domain.QuestionTypeMultipleChoice, Title: "Favourite colour"},
			{ID: "tools", Type: domain.QuestionTypeCheckboxes, Title: "Tools used"},
			{ID: "rating", Type: domain.QuestionTypeRating, Title: "Overall rating"},
			{ID: "feedback", Type: domain.QuestionTypeTextLong, Title: "Feedback"},
			{ID: "untitled", Type: domain.QuestionTypeDate},
		},
	}

	answered := func(id string, status domain.ResponseStatus, answers ...domain.Answer) domain.Response {
		return domain.Response{ID: id, Status: status, Answers: answers}
	}
	a := func(q string, v interface{}) domain.Answer {
		return domain.Answer{QuestionID: q, Value: v}
	}

	responses := []domain.Response{
		answered("r1", domain.ResponseStatusCompleted,
			a("color", "blue"), a("tools", []interface{}{"go", "sql"}), a("rating", 4.0), a("feedback", "great tool")),
		answered("r2", domain.ResponseStatusCompleted,
			a("color", "red"), a("tools", []interface{}{"go"}), a("rating", "5"), a("feedback", "  ")),
		answered("r3", domain.ResponseStatusCompleted,
			a("color", "blue"), a("rating", 3), a("ghost", "dangling")),
		answered("r4", domain.ResponseStatusCompleted,
			a("color", "blue"), a("rating", "n/a")),
		// Incomplete responses do not contribute to the breakdown
		answered("r5", domain.ResponseStatusPartial, a("color", "green")),
	}

	analyzer := &stubAnalyzer{}
	breakdown := QuestionBreakdown(questionnaire, responses, analyzer)
	require.Len(t, breakdown, 5)

	color := breakdown[0]
	assert.Equal(t, "Favourite colour", color.QuestionText)
	assert.Equal(t, 4, color.TotalResponses)
	assert.Equal(t, 100.0, color.ResponseRate)
	assert.Equal(t, map[string]int{"blue": 3, "red": 1}, color.OptionCounts)

	tools := breakdown[1]
	assert.Equal(t, 2, tools.TotalResponses)
	assert.Equal(t, 50.0, tools.ResponseRate)
	assert.Equal(t, map[string]int{"go": 2, "sql": 1}, tools.OptionCounts)

	rating := breakdown[2]
	require.NotNil(t, rating.NumericSummary)
	assert.Equal(t, domain.NumericSummary{
		Count: 3, Average: 4, Median: 4, Min: 3, Max: 5,
		Distribution: map[string]int{"1": 0, "2": 0, "3": 1, "4": 1, "5": 1},
	}, *rating.NumericSummary)
	assert.Nil(t, rating.OptionCounts)

	feedback := breakdown[3]
	assert.Equal(t, 1, feedback.TotalResponses)
	require.NotNil(t, feedback.TextAnalysis)
	assert.Equal(t, [][]string{{"great tool"}}, analyzer.seen)

	untitled := breakdown[4]
	assert.Equal(t, "Question untitled", untitled.QuestionText)
	assert.Zero(t, untitled.TotalResponses)
	assert.Zero(t, untitled.ResponseRate)
}

func TestSummarizeNumbersDistribution(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   map[string]int
	}{
		{"no numbers", []interface{}{"n/a"}, map[string]int{}},
		{"fractions bucket by whole part", []interface{}{1.0, 2.5, 2.9, "3"}, map[string]int{"1": 1, "2": 2, "3": 1}},
		{"buckets reach the highest rating", []interface{}{7, 7.0}, map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0, "6": 0, "7": 2}},
		{"zero is not bucketed", []interface{}{0, 2}, map[string]int{"1": 0, "2": 1}},
		{"non-finite text is ignored", []interface{}{"nan", "Inf", 1}, map[string]int{"1": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarizeNumbers(tt.values).Distribution)
		})
	}
}

func TestQuestionBreakdownWithoutQuestionnaire(t *testing.T) {
	assert.Empty(t, QuestionBreakdown(nil, []domain.Response{response("r1", domain.ResponseStatusCompleted, 10)}, nil))
}
