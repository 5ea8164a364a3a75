package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"surveypulse/internal/config"
	"surveypulse/pkg/contracts/domain"
)

// ResponseSource fetches questionnaires and their response records
type ResponseSource interface {
	Questionnaire(ctx context.Context, id string) (*domain.Questionnaire, error)
	Responses(ctx context.Context, questionnaireID string) ([]domain.Response, error)
}

// FileSource reads questionnaires and responses from JSON documents under the
// data directory: questionnaires/{id}.json and responses/{id}.json.
type FileSource struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewFileSource creates a file backed response source
func NewFileSource(paths *config.Paths, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		paths:  paths,
		logger: logger.With(slog.String("component", "file_source")),
	}
}

// Questionnaire loads a questionnaire document
func (s *FileSource) Questionnaire(ctx context.Context, id string) (*domain.Questionnaire, error) {
	var q domain.Questionnaire
	if err := s.readDocument(ctx, s.paths.QuestionnairePath(id), &q); err != nil {
		return nil, err
	}
	if q.ID == "" {
		q.ID = id
	}
	return &q, nil
}

// Responses loads the response records of a questionnaire. A questionnaire
// without a responses document has no responses yet.
func (s *FileSource) Responses(ctx context.Context, questionnaireID string) ([]domain.Response, error) {
	path := s.paths.ResponsesPath(questionnaireID)
	if !config.FileExists(s.paths.QuestionnairePath(questionnaireID)) {
		return nil, fmt.Errorf("%w: %s", ErrQuestionnaireNotFound, questionnaireID)
	}
	if !config.FileExists(path) {
		return []domain.Response{}, nil
	}

	var responses []domain.Response
	if err := s.readDocument(ctx, path, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *FileSource) readDocument(ctx context.Context, path string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrQuestionnaireNotFound, path)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read survey document",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.ErrorContext(ctx, "failed to decode survey document",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: decode %s: %v", ErrUpstreamUnavailable, path, err)
	}

	s.logger.DebugContext(ctx, "survey document loaded", slog.String("path", path))
	return nil
}
