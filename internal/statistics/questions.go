package statistics

import (
	"fmt"
	"strconv"
	"strings"

	"surveypulse/internal/shared"
	"surveypulse/pkg/contracts/domain"
)

// TextAnalyzer is the part of the text analysis capability question rollups need
type TextAnalyzer interface {
	AnalyzeTextSet(texts []string) domain.TextAnalysisResult
}

// QuestionAnswers gathers the non-empty answers given to one question
type QuestionAnswers struct {
	Question domain.QuestionDescriptor
	Values   []interface{}
}

// CollectAnswers groups answers by question in questionnaire order. Answers
// to unknown question ids are ignored here; exports still show them.
func CollectAnswers(questionnaire *domain.Questionnaire, responses []domain.Response) []QuestionAnswers {
	if questionnaire == nil {
		return nil
	}

	index := make(map[string]int, len(questionnaire.Questions))
	collected := make([]QuestionAnswers, len(questionnaire.Questions))
	for i, q := range questionnaire.Questions {
		index[q.ID] = i
		collected[i] = QuestionAnswers{Question: q}
	}

	for _, r := range responses {
		for _, a := range r.Answers {
			i, ok := index[a.QuestionID]
			if !ok || isEmptyAnswer(a.Value) {
				continue
			}
			collected[i].Values = append(collected[i].Values, a.Value)
		}
	}
	return collected
}

func isEmptyAnswer(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	}
	return false
}

// AnalyzeQuestion builds the rollup of a single question. completed is the
// number of completed responses and is the base of the response rate.
func AnalyzeQuestion(qa QuestionAnswers, completed int, analyzer TextAnalyzer) domain.QuestionAnalytics {
	title := qa.Question.Title
	if title == "" {
		title = fmt.Sprintf("Question %s", qa.Question.ID)
	}

	result := domain.QuestionAnalytics{
		QuestionID:     qa.Question.ID,
		QuestionText:   title,
		QuestionType:   qa.Question.Type,
		TotalResponses: len(qa.Values),
	}
	if completed > 0 {
		result.ResponseRate = shared.Percent(float64(len(qa.Values)), float64(completed), 2)
	}

	switch {
	case qa.Question.Type.IsText():
		if analyzer != nil {
			texts := make([]string, 0, len(qa.Values))
			for _, v := range qa.Values {
				if s, ok := v.(string); ok {
					texts = append(texts, s)
				}
			}
			analysis := analyzer.AnalyzeTextSet(texts)
			result.TextAnalysis = &analysis
		}
	case qa.Question.Type.IsNumeric():
		result.NumericSummary = summarizeNumbers(qa.Values)
	case qa.Question.Type.IsChoice() || qa.Question.Type == domain.QuestionTypeRanking:
		result.OptionCounts = countOptions(qa.Values)
	}

	return result
}

// summarizeNumbers summarizes values that read as plain decimals; others are
// skipped
func summarizeNumbers(values []interface{}) *domain.NumericSummary {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := shared.ParseDecimal(shared.Stringify(v)); ok {
			numbers = append(numbers, f)
		}
	}
	if len(numbers) == 0 {
		return &domain.NumericSummary{Distribution: map[string]int{}}
	}

	summary := &domain.NumericSummary{
		Count:   len(numbers),
		Average: AverageTime(numbers),
		Median:  MedianTime(numbers),
		Min:     numbers[0],
		Max:     numbers[0],
	}
	for _, n := range numbers[1:] {
		if n < summary.Min {
			summary.Min = n
		}
		if n > summary.Max {
			summary.Max = n
		}
	}
	summary.Distribution = ratingDistribution(numbers, int(summary.Max))
	return summary
}

// ratingDistribution buckets ratings by their whole part into "1".."top".
// Ratings outside that range are not counted.
func ratingDistribution(numbers []float64, top int) map[string]int {
	dist := make(map[string]int, top)
	for i := 1; i <= top; i++ {
		dist[strconv.Itoa(i)] = 0
	}
	for _, n := range numbers {
		key := strconv.Itoa(int(n))
		if _, ok := dist[key]; ok {
			dist[key]++
		}
	}
	return dist
}

// countOptions counts selected options; list answers count each element
func countOptions(values []interface{}) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		if list, ok := v.([]interface{}); ok {
			for _, item := range list {
				counts[shared.Stringify(item)]++
			}
			continue
		}
		counts[shared.Stringify(v)]++
	}
	return counts
}

// QuestionBreakdown builds per-question analytics in questionnaire order.
// Only completed responses contribute, so response rates stay within 0..100.
func QuestionBreakdown(questionnaire *domain.Questionnaire, responses []domain.Response, analyzer TextAnalyzer) []domain.QuestionAnalytics {
	completed := make([]domain.Response, 0, len(responses))
	for _, r := range responses {
		if r.IsCompleted() {
			completed = append(completed, r)
		}
	}

	collected := CollectAnswers(questionnaire, completed)
	breakdown := make([]domain.QuestionAnalytics, 0, len(collected))
	for _, qa := range collected {
		breakdown = append(breakdown, AnalyzeQuestion(qa, len(completed), analyzer))
	}
	return breakdown
}
