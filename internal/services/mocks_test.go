package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveypulse/pkg/contracts/domain"
)

// MockResponseSource is a mock for the ResponseSource interface
type MockResponseSource struct {
	mock.Mock
}

func (m *MockResponseSource) Questionnaire(ctx context.Context, id string) (*domain.Questionnaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Questionnaire), args.Error(1)
}

func (m *MockResponseSource) Responses(ctx context.Context, questionnaireID string) ([]domain.Response, error) {
	args := m.Called(ctx, questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}

// MockInsightsPublisher is a mock for the InsightsPublisher interface
type MockInsightsPublisher struct {
	mock.Mock
}

func (m *MockInsightsPublisher) Publish(ctx context.Context, questionnaireID string, insights domain.InsightsBundle) error {
	args := m.Called(ctx, questionnaireID, insights)
	return args.Error(0)
}
