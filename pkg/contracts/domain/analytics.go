package domain

import (
	"time"
)

// QualityFlag marks a reason a response looks low-effort
type QualityFlag string

const (
	QualityFlagTooFast        QualityFlag = "too_fast"
	QualityFlagStraightLining QualityFlag = "straight_lining"
	QualityFlagIncomplete     QualityFlag = "incomplete"
)

// QualityResult is the composite quality score of one response
type QualityResult struct {
	Score        int           `json:"score"`
	Flags        []QualityFlag `json:"flags"`
	IsSuspicious bool          `json:"is_suspicious"`
}

// HasFlag reports whether the result carries the given flag
func (q QualityResult) HasFlag(flag QualityFlag) bool {
	for _, f := range q.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentDistribution holds per-class sentiment values. For a single text
// analysis these are percentages; rolled up across questions they are sums.
type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Keyword is a frequent token with its share of all kept tokens
type Keyword struct {
	Word      string  `json:"word"`
	Count     int     `json:"count"`
	Relevance float64 `json:"relevance"`
}

// TextAnalysisResult summarizes a set of free-text answers
type TextAnalysisResult struct {
	WordCount     int                   `json:"word_count"`
	AverageLength float64               `json:"average_length"`
	Sentiment     SentimentDistribution `json:"sentiment"`
	Keywords      []Keyword             `json:"keywords"`
	Topics        []string              `json:"topics"`
}

// TextSentiment is the analysis of a single freeform text
type TextSentiment struct {
	Overall   string    `json:"overall"`
	Score     float64   `json:"score"`
	Keywords  []Keyword `json:"keywords"`
	WordCount int       `json:"word_count"`
}

// ResponseStats holds completion statistics over a response set
type ResponseStats struct {
	Total                 int     `json:"total"`
	Completed             int     `json:"completed"`
	Abandoned             int     `json:"abandoned"`
	CompletionRate        float64 `json:"completion_rate"`
	AverageCompletionTime float64 `json:"average_completion_time"`
	MedianCompletionTime  float64 `json:"median_completion_time"`
}

// NumericSummary describes rating or scale answers
type NumericSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`

	// Distribution counts answers per whole rating from "1" up to the
	// highest rating given
	Distribution map[string]int `json:"distribution"`
}

// QuestionAnalytics is the per-question rollup of a response set
type QuestionAnalytics struct {
	QuestionID     string              `json:"question_id"`
	QuestionText   string              `json:"question_text"`
	QuestionType   QuestionType        `json:"question_type"`
	TotalResponses int                 `json:"total_responses"`
	ResponseRate   float64             `json:"response_rate"`
	OptionCounts   map[string]int      `json:"option_counts,omitempty"`
	NumericSummary *NumericSummary     `json:"numeric_summary,omitempty"`
	TextAnalysis   *TextAnalysisResult `json:"text_analysis,omitempty"`
}

// QualityMetrics aggregates quality results over a response set
type QualityMetrics struct {
	ScoredResponses     int                 `json:"scored_responses"`
	SuspiciousResponses int                 `json:"suspicious_responses"`
	AverageScore        float64             `json:"average_score"`
	FlagCounts          map[QualityFlag]int `json:"flag_counts"`
}

// AnalyticsBundle is everything insight generation reads
type AnalyticsBundle struct {
	QuestionnaireID string              `json:"questionnaire_id"`
	Stats           ResponseStats       `json:"stats"`
	Questions       []QuestionAnalytics `json:"questions"`
	Quality         QualityMetrics      `json:"quality"`
	GeneratedAt     time.Time           `json:"generated_at"`
}

// SentimentOverview is the sentiment rollup across all text questions
type SentimentOverview struct {
	Overall      string                `json:"overall"`
	Distribution SentimentDistribution `json:"distribution"`
}

// InsightsBundle is the narrative derived from an AnalyticsBundle.
// It is never patched; regenerate it from a fresh bundle instead.
type InsightsBundle struct {
	Summary           string            `json:"summary"`
	Findings          []string          `json:"findings"`
	Recommendations   []string          `json:"recommendations"`
	SentimentOverview SentimentOverview `json:"sentiment_overview"`
}
