package textanalysis

import (
	"strings"

	"surveypulse/internal/shared"
	"surveypulse/pkg/contracts/domain"
)

// Polarity thresholds separating the three sentiment classes
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// DefaultMaxKeywords caps keyword lists when no explicit limit is given
const DefaultMaxKeywords = 10

// Analyzer derives text statistics using the engine selected at start-up
type Analyzer struct {
	engine      Engine
	maxKeywords int
}

// NewAnalyzer creates an analyzer. A non-positive maxKeywords uses DefaultMaxKeywords.
func NewAnalyzer(engine Engine, maxKeywords int) *Analyzer {
	if engine == nil {
		engine = NewBasicEngine()
	}
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	return &Analyzer{engine: engine, maxKeywords: maxKeywords}
}

// Engine returns the engine backing the analyzer
func (a *Analyzer) Engine() Engine {
	return a.engine
}

// Classify maps a polarity score to a sentiment label
func Classify(polarity float64) string {
	switch {
	case polarity > PositiveThreshold:
		return domain.SentimentPositive
	case polarity < NegativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// AnalyzeTextSet computes word counts, the sentiment distribution and keywords
// of a set of texts. Empty texts are skipped entirely.
func (a *Analyzer) AnalyzeTextSet(texts []string) domain.TextAnalysisResult {
	result := domain.TextAnalysisResult{
		Keywords: []domain.Keyword{},
		Topics:   []string{},
	}

	cleaned := make([]string, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		cleaned = append(cleaned, CleanText(text))
	}

	if len(cleaned) == 0 {
		return result
	}

	for _, text := range cleaned {
		result.WordCount += len(strings.Fields(text))
	}
	result.AverageLength = float64(result.WordCount) / float64(len(cleaned))

	var positive, neutral, negative, classified int
	for _, text := range cleaned {
		if strings.TrimSpace(text) == "" {
			continue
		}
		switch Classify(a.engine.Polarity(text)) {
		case domain.SentimentPositive:
			positive++
		case domain.SentimentNegative:
			negative++
		default:
			neutral++
		}
		classified++
	}

	if classified > 0 {
		total := float64(classified)
		result.Sentiment = domain.SentimentDistribution{
			Positive: shared.Percent(float64(positive), total, 1),
			Neutral:  shared.Percent(float64(neutral), total, 1),
			Negative: shared.Percent(float64(negative), total, 1),
		}
	}

	result.Keywords = a.ExtractKeywords(cleaned, a.maxKeywords)
	return result
}

// AnalyzeText analyzes a single freeform text and labels its overall sentiment
func (a *Analyzer) AnalyzeText(text string) domain.TextSentiment {
	result := a.AnalyzeTextSet([]string{text})

	overall := domain.SentimentNeutral
	switch {
	case result.Sentiment.Positive > result.Sentiment.Negative:
		overall = domain.SentimentPositive
	case result.Sentiment.Negative > result.Sentiment.Positive:
		overall = domain.SentimentNegative
	}

	return domain.TextSentiment{
		Overall:   overall,
		Score:     (result.Sentiment.Positive - result.Sentiment.Negative) / 100,
		Keywords:  result.Keywords,
		WordCount: result.WordCount,
	}
}
