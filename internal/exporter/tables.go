package exporter

import (
	"fmt"

	"surveypulse/pkg/contracts/domain"
)

// Sheet names of the rendered workbook
const (
	ResponsesSheet = "Responses"
	AnalyticsSheet = "Analytics"
)

// Fixed response columns
const (
	ColumnResponseID     = "Response ID"
	ColumnSubmittedAt    = "Submitted At"
	ColumnCompletionTime = "Completion Time (seconds)"
	ColumnStatus         = "Status"
	ColumnIPAddress      = "IP Address"
	ColumnUserAgent      = "User Agent"

	ColumnTotalScore = "Total Score"
	ColumnMaxScore   = "Max Score"
	ColumnPercentage = "Percentage"
	ColumnGrade      = "Grade"
	ColumnPassed     = "Passed"
)

// Summary table columns
const (
	ColumnMetric = "Metric"
	ColumnValue  = "Value"
)

// FixedColumns are present in every response table
var FixedColumns = []string{
	ColumnResponseID,
	ColumnSubmittedAt,
	ColumnCompletionTime,
	ColumnStatus,
	ColumnIPAddress,
	ColumnUserAgent,
}

// QuestionColumnPrefix keeps question columns apart from the fixed columns
const QuestionColumnPrefix = "Q: "

// QuestionLabel resolves the column label of a question id. Ids missing
// from the questionnaire get a synthesized title.
func QuestionLabel(questionnaire *domain.Questionnaire, questionID string) string {
	if q, ok := questionnaire.Lookup(questionID); ok && q.Title != "" {
		return QuestionColumnPrefix + q.Title
	}
	return fmt.Sprintf("%sQuestion %s", QuestionColumnPrefix, questionID)
}

// BuildResponseTable flattens responses into one row each. Question columns
// are added only for questions some response actually answered.
func BuildResponseTable(responses []domain.Response, questionnaire *domain.Questionnaire) *Table {
	table := NewTable(ResponsesSheet, FixedColumns...)

	for _, r := range responses {
		row := table.NewRow().
			Set(ColumnResponseID, r.ID).
			Set(ColumnSubmittedAt, formatTime(r.Metadata.SubmittedAt)).
			Set(ColumnCompletionTime, r.Metadata.CompletionTime).
			Set(ColumnStatus, string(r.Status)).
			Set(ColumnIPAddress, r.Metadata.IPAddress).
			Set(ColumnUserAgent, r.Metadata.UserAgent)

		for _, a := range r.Answers {
			row.Set(QuestionLabel(questionnaire, a.QuestionID), formatAnswer(a.Value))
		}

		if s := r.Scoring; s != nil {
			row.Set(ColumnTotalScore, s.TotalScore).
				Set(ColumnMaxScore, s.MaxScore).
				Set(ColumnPercentage, s.Percentage).
				Set(ColumnGrade, s.Grade).
				Set(ColumnPassed, formatBool(s.Passed))
		}
	}

	return table
}

// BuildSummaryTable renders response statistics as Metric/Value rows
func BuildSummaryTable(stats domain.ResponseStats) *Table {
	table := NewTable(AnalyticsSheet, ColumnMetric, ColumnValue)

	metrics := []struct {
		label string
		value float64
	}{
		{"Total Responses", float64(stats.Total)},
		{"Completed Responses", float64(stats.Completed)},
		{"Abandoned Responses", float64(stats.Abandoned)},
		{"Completion Rate (%)", stats.CompletionRate},
		{"Average Completion Time (seconds)", stats.AverageCompletionTime},
		{"Median Completion Time (seconds)", stats.MedianCompletionTime},
	}
	for _, m := range metrics {
		table.NewRow().Set(ColumnMetric, m.label).Set(ColumnValue, m.value)
	}

	return table
}
