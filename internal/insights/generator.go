package insights

import (
	"fmt"
	"strconv"
	"strings"

	"surveypulse/pkg/contracts/domain"
)

// Thresholds used by the rule tables
const (
	ExcellentCompletionRate = 80.0
	GoodCompletionRate      = 60.0

	HighEngagementRate   = 90.0
	DesignIssueRate      = 50.0
	LongCompletionTime   = 600.0
	ShortCompletionTime  = 60.0
	SuspiciousShareLimit = 0.2

	ShortenSurveyRate     = 70.0
	PaginateCompletionSec = 300.0

	LowResponseShare     = 0.8
	MaxLowResponseTitles = 3
	MaxTitleLength       = 50
)

type rule struct {
	applies func(domain.AnalyticsBundle) bool
	message func(domain.AnalyticsBundle) string
}

func fixed(msg string) func(domain.AnalyticsBundle) string {
	return func(domain.AnalyticsBundle) string { return msg }
}

var findingRules = []rule{
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.CompletionRate > HighEngagementRate },
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("High engagement: %.1f%% of respondents completed the survey.", b.Stats.CompletionRate)
		},
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.CompletionRate < DesignIssueRate },
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("Only %.1f%% of respondents completed the survey, which points to survey design issues.", b.Stats.CompletionRate)
		},
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.AverageCompletionTime > LongCompletionTime },
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("Long completion time: respondents take %s seconds on average.", seconds(b.Stats.AverageCompletionTime))
		},
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.AverageCompletionTime < ShortCompletionTime },
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("Respondents finish in %s seconds on average; the survey may be too simple to yield detailed insight.", seconds(b.Stats.AverageCompletionTime))
		},
	},
	{
		applies: func(b domain.AnalyticsBundle) bool {
			return b.Stats.Total > 0 &&
				float64(b.Quality.SuspiciousResponses)/float64(b.Stats.Total) > SuspiciousShareLimit
		},
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("Many suspicious responses: %d of %d responses were flagged as low quality.", b.Quality.SuspiciousResponses, b.Stats.Total)
		},
	},
}

var recommendationRules = []rule{
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.CompletionRate < ShortenSurveyRate },
		message: fixed("Consider shortening the survey to reduce drop-off."),
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.CompletionRate < ShortenSurveyRate },
		message: fixed("Review question wording for clarity and remove questions that may confuse respondents."),
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.AverageCompletionTime > PaginateCompletionSec },
		message: fixed("Split the survey into multiple pages to make it feel shorter."),
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return b.Stats.AverageCompletionTime > PaginateCompletionSec },
		message: fixed("Simplify question types, for example replace open text with multiple choice where possible."),
	},
	{
		applies: func(b domain.AnalyticsBundle) bool { return len(lowResponseQuestions(b)) > 0 },
		message: func(b domain.AnalyticsBundle) string {
			return fmt.Sprintf("Review these questions with low response rates: %s", strings.Join(lowResponseQuestions(b), ", "))
		},
	},
}

func evaluate(rules []rule, b domain.AnalyticsBundle) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(b) {
			out = append(out, r.message(b))
		}
	}
	return out
}

// lowResponseQuestions returns up to MaxLowResponseTitles truncated titles of
// questions answered by fewer than LowResponseShare of completed responses
func lowResponseQuestions(b domain.AnalyticsBundle) []string {
	limit := float64(b.Stats.Completed) * LowResponseShare

	var titles []string
	for _, q := range b.Questions {
		if float64(q.TotalResponses) >= limit {
			continue
		}
		titles = append(titles, truncate(q.QuestionText, MaxTitleLength))
		if len(titles) == MaxLowResponseTitles {
			break
		}
	}
	return titles
}

// seconds renders a duration in seconds without trailing zeros
func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Summary renders the one-paragraph overview of a bundle
func Summary(b domain.AnalyticsBundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "This survey received %d responses, %d of them completed (%.1f%% completion rate).",
		b.Stats.Total, b.Stats.Completed, b.Stats.CompletionRate)

	switch {
	case b.Stats.CompletionRate > ExcellentCompletionRate:
		sb.WriteString(" This is an excellent completion rate.")
	case b.Stats.CompletionRate > GoodCompletionRate:
		sb.WriteString(" This is a good completion rate.")
	default:
		sb.WriteString(" Consider ways to improve response rates.")
	}

	if b.Stats.AverageCompletionTime > 0 {
		fmt.Fprintf(&sb, " Average completion time is %s seconds.", seconds(b.Stats.AverageCompletionTime))
	}
	return sb.String()
}

// Findings evaluates the finding rules in order
func Findings(b domain.AnalyticsBundle) []string {
	return evaluate(findingRules, b)
}

// Recommendations evaluates the recommendation rules in order
func Recommendations(b domain.AnalyticsBundle) []string {
	return evaluate(recommendationRules, b)
}

// SentimentTrends sums the sentiment distributions of all text questions.
// The overall label needs a strict majority over the other two classes.
func SentimentTrends(questions []domain.QuestionAnalytics) domain.SentimentOverview {
	var sum domain.SentimentDistribution
	for _, q := range questions {
		if q.TextAnalysis == nil {
			continue
		}
		sum.Positive += q.TextAnalysis.Sentiment.Positive
		sum.Neutral += q.TextAnalysis.Sentiment.Neutral
		sum.Negative += q.TextAnalysis.Sentiment.Negative
	}

	overall := domain.SentimentNeutral
	switch {
	case sum.Positive > sum.Negative+sum.Neutral:
		overall = domain.SentimentPositive
	case sum.Negative > sum.Positive+sum.Neutral:
		overall = domain.SentimentNegative
	}

	return domain.SentimentOverview{Overall: overall, Distribution: sum}
}

// Generate derives the full insights bundle. It reads only its argument.
func Generate(b domain.AnalyticsBundle) domain.InsightsBundle {
	return domain.InsightsBundle{
		Summary:           Summary(b),
		Findings:          Findings(b),
		Recommendations:   Recommendations(b),
		SentimentOverview: SentimentTrends(b.Questions),
	}
}
