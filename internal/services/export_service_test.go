package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/exporter"
	"surveypulse/internal/shared/testutil"
	"surveypulse/pkg/contracts/domain"
)

func newTestExportService(t *testing.T, source ResponseSource) *ExportService {
	logger, _ := testutil.NewTestLogger(t)
	exp := exporter.New(exporter.Options{CSVBOM: false, MaxColumnWidth: 50}, logger)
	return NewExportService(source, exp, newTestPaths(t), logger)
}

func TestExportService_ExportQuestionnaire(t *testing.T) {
	tests := []struct {
		name            string
		format          string
		wantFormat      domain.ExportFormat
		wantContentType string
		wantFileName    string
	}{
		{"excel", "excel", domain.ExportFormatExcel, exporter.ContentTypeExcel, "customer-feedback_responses.xlsx"},
		{"default is excel", "", domain.ExportFormatExcel, exporter.ContentTypeExcel, "customer-feedback_responses.xlsx"},
		{"csv", "CSV", domain.ExportFormatCSV, exporter.ContentTypeCSV, "customer-feedback_responses.csv"},
		{"json", "json", domain.ExportFormatJSON, exporter.ContentTypeJSON, "customer-feedback_responses.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockResponseSource)
			source.On("Questionnaire", mock.Anything, testutil.SampleQuestionnaireID).Return(testutil.SampleQuestionnaire(), nil)
			source.On("Responses", mock.Anything, testutil.SampleQuestionnaireID).Return(testutil.SampleResponses(sampleBase), nil)

			svc := newTestExportService(t, source)
			result, err := svc.ExportQuestionnaire(context.Background(), testutil.SampleQuestionnaireID, tt.format, domain.DateRange{})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFormat, result.Format)
			assert.Equal(t, tt.wantContentType, result.ContentType)
			assert.Equal(t, tt.wantFileName, result.FileName)
			assert.Equal(t, 4, result.RecordCount)
			assert.Equal(t, exporter.Digest(result.Content), result.Digest)
			source.AssertExpectations(t)
		})
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	for _, format := range []string{"pdf", "docx"} {
		t.Run(format, func(t *testing.T) {
			source := new(MockResponseSource)
			svc := newTestExportService(t, source)

			_, err := svc.ExportQuestionnaire(context.Background(), testutil.SampleQuestionnaireID, format, domain.DateRange{})
			assert.ErrorIs(t, err, exporter.ErrUnsupportedFormat)
			source.AssertNotCalled(t, "Questionnaire", mock.Anything, mock.Anything)
		})
	}
}

func TestExportService_SourceErrors(t *testing.T) {
	source := new(MockResponseSource)
	source.On("Questionnaire", mock.Anything, "gone").Return(nil, ErrQuestionnaireNotFound)

	svc := newTestExportService(t, source)
	_, err := svc.ExportQuestionnaire(context.Background(), "gone", "csv", domain.DateRange{})
	assert.ErrorIs(t, err, ErrQuestionnaireNotFound)
}

func TestExportService_ExportInlineIsDeterministic(t *testing.T) {
	svc := newTestExportService(t, nil)
	responses := testutil.SampleResponses(sampleBase)

	first, err := svc.Export(context.Background(), "json", testutil.SampleQuestionnaire(), responses)
	require.NoError(t, err)
	second, err := svc.Export(context.Background(), "json", testutil.SampleQuestionnaire(), responses)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)

	var decoded []domain.Response
	require.NoError(t, json.Unmarshal(first.Content, &decoded))
	assert.Len(t, decoded, 4)
}

func TestExportService_Save(t *testing.T) {
	svc := newTestExportService(t, nil)

	result, err := svc.Export(context.Background(), "csv", testutil.SampleQuestionnaire(), testutil.SampleResponses(sampleBase))
	require.NoError(t, err)

	path, err := svc.Save(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "customer-feedback_responses.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, result.Content, data)
}
