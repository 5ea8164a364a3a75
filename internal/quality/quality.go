package quality

import (
	"surveypulse/internal/shared"
	"surveypulse/pkg/contracts/domain"
)

// Scoring thresholds and penalties
const (
	minStraightLiningAnswers = 3
	identicalAnswersScore    = 100.0
	monotonicAnswersScore    = 75.0

	tooFastSecondsPerQuestion = 5.0
	straightLiningThreshold   = 50.0
	completenessRatio         = 0.7

	tooFastPenalty        = 30
	straightLiningPenalty = 25
	incompletePenalty     = 20

	// SuspiciousBelow is the score under which a response is suspicious
	SuspiciousBelow = 50
)

// DetectStraightLining returns 100 when every answer is identical, 75 when at
// least three answers are plain decimals and those numbers never decrease or
// never increase, and 0 otherwise. Other answers are dropped before the
// monotonicity check rather than breaking the sequence.
func DetectStraightLining(answers []interface{}) float64 {
	if len(answers) < minStraightLiningAnswers {
		return 0
	}

	rendered := make([]string, len(answers))
	for i, a := range answers {
		rendered[i] = shared.Stringify(a)
	}

	allSame := true
	for _, s := range rendered[1:] {
		if s != rendered[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return identicalAnswersScore
	}

	numeric := make([]float64, 0, len(rendered))
	for _, s := range rendered {
		if f, ok := shared.ParseDecimal(s); ok {
			numeric = append(numeric, f)
		}
	}

	if len(numeric) >= minStraightLiningAnswers && (nonDecreasing(numeric) || nonIncreasing(numeric)) {
		return monotonicAnswersScore
	}
	return 0
}

func nonDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}

func nonIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			return false
		}
	}
	return true
}

// ScoreResponse starts every response at 100 and subtracts a penalty for each
// independent quality problem found
func ScoreResponse(completionTime float64, questionCount int, answers []interface{}) domain.QualityResult {
	score := 100
	flags := make([]domain.QualityFlag, 0, 3)

	if completionTime > 0 && questionCount > 0 && completionTime/float64(questionCount) < tooFastSecondsPerQuestion {
		score -= tooFastPenalty
		flags = append(flags, domain.QualityFlagTooFast)
	}

	if DetectStraightLining(answers) > straightLiningThreshold {
		score -= straightLiningPenalty
		flags = append(flags, domain.QualityFlagStraightLining)
	}

	if float64(len(answers)) < float64(questionCount)*completenessRatio {
		score -= incompletePenalty
		flags = append(flags, domain.QualityFlagIncomplete)
	}

	if score < 0 {
		score = 0
	}

	return domain.QualityResult{
		Score:        score,
		Flags:        flags,
		IsSuspicious: score < SuspiciousBelow,
	}
}

// ResponseQuality pairs a response id with its quality result
type ResponseQuality struct {
	ResponseID string               `json:"response_id"`
	Result     domain.QualityResult `json:"result"`
}

// ScoreAll scores every response against questionCount questions and rolls
// the results up into QualityMetrics
func ScoreAll(responses []domain.Response, questionCount int) ([]ResponseQuality, domain.QualityMetrics) {
	results := make([]ResponseQuality, 0, len(responses))
	metrics := domain.QualityMetrics{
		FlagCounts: make(map[domain.QualityFlag]int),
	}

	total := 0
	for _, r := range responses {
		result := ScoreResponse(r.Metadata.CompletionTime, questionCount, r.AnswerValues())
		results = append(results, ResponseQuality{ResponseID: r.ID, Result: result})

		total += result.Score
		if result.IsSuspicious {
			metrics.SuspiciousResponses++
		}
		for _, f := range result.Flags {
			metrics.FlagCounts[f]++
		}
	}

	metrics.ScoredResponses = len(results)
	if len(results) > 0 {
		metrics.AverageScore = shared.Round(float64(total)/float64(len(results)), 2)
	}

	return results, metrics
}
