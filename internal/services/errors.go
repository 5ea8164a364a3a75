package services

import "errors"

// Service errors
var (
	// Source errors
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrUpstreamUnavailable   = errors.New("survey data source unavailable")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
