package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "surveypulse/internal/errors"
	"surveypulse/pkg/contracts/domain"
)

type analyticsBody struct {
	Questionnaire *domain.Questionnaire `json:"questionnaire" validate:"required"`
	Responses     []domain.Response     `json:"responses" validate:"dive"`
}

func TestValidator_Decode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		limit      int64
		wantStatus int
		wantCode   string
		wantFields []string
	}{
		{
			name: "valid body",
			body: `{"questionnaire":{"id":"s1","questions":[{"id":"q1","type":"rating"}]},"responses":[{"id":"r1","answers":[{"question_id":"q1","value":4}]}]}`,
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeInvalidRequest,
		},
		{
			name:       "malformed json",
			body:       `{"questionnaire":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeInvalidRequest,
		},
		{
			name:       "missing questionnaire",
			body:       `{"responses":[]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeValidationFailed,
			wantFields: []string{"questionnaire"},
		},
		{
			name:       "unknown question type and missing ids",
			body:       `{"questionnaire":{"id":"s1","questions":[{"id":"q1","type":"essay"}]},"responses":[{"answers":[{"value":1}]}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeValidationFailed,
			wantFields: []string{"questionnaire.questions[0].type", "responses[0].id", "responses[0].answers[0].question_id"},
		},
		{
			name:       "body too large",
			body:       `{"questionnaire":{"id":"` + strings.Repeat("x", 200) + `"}}`,
			limit:      64,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   apierrors.CodePayloadTooLarge,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(tt.body))
			if tt.limit > 0 {
				req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, tt.limit)
			}

			var dst analyticsBody
			err := v.Decode(req, &dst)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "s1", dst.Questionnaire.ID)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)

			if tt.wantFields != nil {
				fieldErrs, ok := apiErr.Details.([]apierrors.ValidationError)
				require.True(t, ok)
				fields := make([]string, 0, len(fieldErrs))
				for _, fe := range fieldErrs {
					fields = append(fields, fe.Field)
				}
				assert.ElementsMatch(t, tt.wantFields, fields)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	v := NewValidator()
	err := v.Struct(&struct {
		Count int `json:"count" validate:"gte=0"`
	}{Count: -1})

	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	fieldErrs := apiErr.Details.([]apierrors.ValidationError)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "count", fieldErrs[0].Field)
	assert.Equal(t, "count must be greater than or equal to 0", fieldErrs[0].Message)
}
