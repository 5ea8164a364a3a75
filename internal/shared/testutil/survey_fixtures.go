package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"surveypulse/pkg/contracts/domain"
)

// SampleQuestionnaireID is the id of SampleQuestionnaire
const SampleQuestionnaireID = "customer-feedback"

// SampleQuestionnaire returns a questionnaire with a rating, a choice and a
// free-text question
func SampleQuestionnaire() *domain.Questionnaire {
	return &domain.Questionnaire{
		ID:    SampleQuestionnaireID,
		Title: "Customer Feedback",
		Questions: []domain.QuestionDescriptor{
			{ID: "q1", Type: domain.QuestionTypeRating, Title: "How satisfied are you?"},
			{ID: "q2", Type: domain.QuestionTypeMultipleChoice, Title: "Which plan do you use?"},
			{ID: "q3", Type: domain.QuestionTypeTextLong, Title: "Anything else?"},
		},
	}
}

// SampleResponses returns three completed responses and one abandoned
// response submitted on consecutive days starting at base
func SampleResponses(base time.Time) []domain.Response {
	at := func(days int) *time.Time {
		t := base.AddDate(0, 0, days)
		return &t
	}

	return []domain.Response{
		{
			ID: "r1", QuestionnaireID: SampleQuestionnaireID, Status: domain.ResponseStatusCompleted,
			Metadata: domain.ResponseMetadata{SubmittedAt: at(0), CompletionTime: 120, DeviceType: "desktop"},
			Answers: []domain.Answer{
				{QuestionID: "q1", Value: 5.0},
				{QuestionID: "q2", Value: "pro"},
				{QuestionID: "q3", Value: "Great service, very helpful support"},
			},
		},
		{
			ID: "r2", QuestionnaireID: SampleQuestionnaireID, Status: domain.ResponseStatusCompleted,
			Metadata: domain.ResponseMetadata{SubmittedAt: at(1), CompletionTime: 180, DeviceType: "mobile"},
			Answers: []domain.Answer{
				{QuestionID: "q1", Value: 3.0},
				{QuestionID: "q2", Value: "free"},
				{QuestionID: "q3", Value: "Terrible checkout, slow and confusing"},
			},
		},
		{
			ID: "r3", QuestionnaireID: SampleQuestionnaireID, Status: domain.ResponseStatusCompleted,
			Metadata: domain.ResponseMetadata{SubmittedAt: at(2), CompletionTime: 240},
			Answers: []domain.Answer{
				{QuestionID: "q1", Value: 4.0},
				{QuestionID: "q2", Value: "pro"},
			},
		},
		{
			ID: "r4", QuestionnaireID: SampleQuestionnaireID, Status: domain.ResponseStatusAbandoned,
			Metadata: domain.ResponseMetadata{SubmittedAt: at(3), CompletionTime: 10},
			Answers: []domain.Answer{
				{QuestionID: "q1", Value: 1.0},
			},
		},
	}
}

// WriteSurveyData stores a questionnaire and its responses under dataDir in
// the layout read by the file source
func WriteSurveyData(t *testing.T, dataDir string, questionnaire *domain.Questionnaire, responses []domain.Response) {
	t.Helper()

	writeJSON(t, filepath.Join(dataDir, "questionnaires", questionnaire.ID+".json"), questionnaire)
	if responses != nil {
		writeJSON(t, filepath.Join(dataDir, "responses", questionnaire.ID+".json"), responses)
	}
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}
