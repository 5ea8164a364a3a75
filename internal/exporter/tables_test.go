package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/pkg/contracts/domain"
)

func testQuestionnaire() *domain.Questionnaire {
	return &domain.Questionnaire{
		ID:    "customer-feedback",
		Title: "Customer feedback",
		Questions: []domain.QuestionDescriptor{
			{ID: "q1", Type: domain.QuestionTypeMultipleChoice, Title: "How did you hear about us?"},
			{ID: "q2", Type: domain.QuestionTypeCheckboxes, Title: "Which features do you use?"},
			{ID: "q3", Type: domain.QuestionTypeRating, Title: "Overall rating"},
			{ID: "q4", Type: domain.QuestionTypeMatrix, Title: "Rate each area"},
			{ID: "q5", Type: domain.QuestionTypeTextLong, Title: "Anything else?"},
		},
	}
}

func testResponses() []domain.Response {
	submitted := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	return []domain.Response{
		{
			ID:     "r1",
			Status: domain.ResponseStatusCompleted,
			Metadata: domain.ResponseMetadata{
				SubmittedAt:    &submitted,
				CompletionTime: 184.5,
				IPAddress:      "10.0.0.1",
				UserAgent:      "Mozilla/5.0",
			},
			Answers: []domain.Answer{
				{QuestionID: "q1", Value: "Search engine"},
				{QuestionID: "q2", Value: []interface{}{"Reports", "Exports"}},
				{QuestionID: "q3", Value: 4.0},
			},
		},
		{
			ID:     "r2",
			Status: domain.ResponseStatusPartial,
			Answers: []domain.Answer{
				{QuestionID: "q4", Value: map[string]interface{}{"support": 5.0, "pricing": 3.0}},
				{QuestionID: "ghost", Value: "orphan answer"},
			},
			Scoring: &domain.Scoring{TotalScore: 8, MaxScore: 10, Percentage: 80, Grade: "B", Passed: true},
		},
	}
}

func TestBuildResponseTable(t *testing.T) {
	responses := testResponses()
	table := BuildResponseTable(responses, testQuestionnaire())

	require.Equal(t, len(responses), table.Len())

	expectedColumns := append(append([]string{}, FixedColumns...),
		"Q: How did you hear about us?",
		"Q: Which features do you use?",
		"Q: Overall rating",
		"Q: Rate each area",
		"Q: Question ghost",
		ColumnTotalScore, ColumnMaxScore, ColumnPercentage, ColumnGrade, ColumnPassed,
	)
	assert.Equal(t, expectedColumns, table.Columns())
	assert.NotContains(t, table.Columns(), "Q: Anything else?")

	assert.Equal(t, "r1", table.Cell(0, ColumnResponseID))
	assert.Equal(t, "2024-06-01T09:30:00Z", table.Cell(0, ColumnSubmittedAt))
	assert.Equal(t, 184.5, table.Cell(0, ColumnCompletionTime))
	assert.Equal(t, "completed", table.Cell(0, ColumnStatus))
	assert.Equal(t, "Reports, Exports", table.Cell(0, "Q: Which features do you use?"))
	assert.Equal(t, 4.0, table.Cell(0, "Q: Overall rating"))
	assert.Nil(t, table.Cell(0, ColumnGrade))

	assert.Equal(t, `{"pricing":3,"support":5}`, table.Cell(1, "Q: Rate each area"))
	assert.Equal(t, "orphan answer", table.Cell(1, "Q: Question ghost"))
	assert.Equal(t, "", table.Cell(1, ColumnSubmittedAt))
	assert.Equal(t, 80.0, table.Cell(1, ColumnPercentage))
	assert.Equal(t, "true", table.Cell(1, ColumnPassed))
}

func TestBuildResponseTableEmpty(t *testing.T) {
	table := BuildResponseTable(nil, nil)

	assert.Zero(t, table.Len())
	assert.Equal(t, FixedColumns, table.Columns())
	assert.Empty(t, table.Records())
}

func TestBuildResponseTableWithoutQuestionnaire(t *testing.T) {
	table := BuildResponseTable(testResponses(), nil)

	assert.Contains(t, table.Columns(), "Q: Question q1")
	assert.Contains(t, table.Columns(), "Q: Question ghost")
}

func TestBuildResponseTableQuestionTitleMatchesFixedColumn(t *testing.T) {
	questionnaire := &domain.Questionnaire{
		ID: "census",
		Questions: []domain.QuestionDescriptor{
			{ID: "q1", Type: domain.QuestionTypeMultipleChoice, Title: "Status"},
			{ID: "q2", Type: domain.QuestionTypeTextShort, Title: "Total Score"},
		},
	}
	responses := []domain.Response{{
		ID:     "r1",
		Status: domain.ResponseStatusCompleted,
		Answers: []domain.Answer{
			{QuestionID: "q1", Value: "Married"},
			{QuestionID: "q2", Value: "high"},
		},
		Scoring: &domain.Scoring{TotalScore: 9, MaxScore: 10},
	}}

	table := BuildResponseTable(responses, questionnaire)

	expectedColumns := append(append([]string{}, FixedColumns...),
		"Q: Status", "Q: Total Score",
		ColumnTotalScore, ColumnMaxScore, ColumnPercentage, ColumnGrade, ColumnPassed,
	)
	assert.Equal(t, expectedColumns, table.Columns())
	assert.Equal(t, "completed", table.Cell(0, ColumnStatus))
	assert.Equal(t, "Married", table.Cell(0, "Q: Status"))
	assert.Equal(t, 9.0, table.Cell(0, ColumnTotalScore))
	assert.Equal(t, "high", table.Cell(0, "Q: Total Score"))
}

func TestBuildSummaryTable(t *testing.T) {
	table := BuildSummaryTable(domain.ResponseStats{
		Total:                 10,
		Completed:             7,
		Abandoned:             3,
		CompletionRate:        70,
		AverageCompletionTime: 125.5,
		MedianCompletionTime:  110,
	})

	assert.Equal(t, AnalyticsSheet, table.Name)
	assert.Equal(t, []string{ColumnMetric, ColumnValue}, table.Columns())
	assert.Equal(t, [][]string{
		{"Total Responses", "10"},
		{"Completed Responses", "7"},
		{"Abandoned Responses", "3"},
		{"Completion Rate (%)", "70"},
		{"Average Completion Time (seconds)", "125.5"},
		{"Median Completion Time (seconds)", "110"},
	}, table.Records())
}

func TestTableRecordsFillMissingCells(t *testing.T) {
	table := NewTable("t", "A")
	table.NewRow().Set("A", "1")
	table.NewRow().Set("B", "2")

	assert.Equal(t, []string{"A", "B"}, table.Columns())
	assert.Equal(t, [][]string{{"1", ""}, {"", "2"}}, table.Records())
	assert.Nil(t, table.Cell(5, "A"))
}
