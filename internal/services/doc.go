// Package services implements the business logic layer of the survey
// analytics service. It sits between HTTP handlers or the CLI and the pure
// analysis packages, ensuring that data access, telemetry and publishing are
// centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability (ResponseSource, InsightsPublisher)
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//
// # Available Services
//
//	- AnalyticsService: statistics, per-question rollups, quality scoring and insights
//	- ExportService: renders response sets as Excel, CSV or JSON
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return sentinel errors that handlers transform into problem
// responses:
//
//	- ErrQuestionnaireNotFound when a questionnaire has no stored document
//	- ErrUpstreamUnavailable when the response source cannot be read
//	- ErrInvalidInput for malformed requests
package services
