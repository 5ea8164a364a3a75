package http

import (
	"fmt"
	"net/http"
	"time"

	apierrors "surveypulse/internal/errors"
	"surveypulse/pkg/contracts/domain"
)

// TextRequest is the body of POST /api/analysis/text
type TextRequest struct {
	Text string `json:"text" validate:"max=100000"`
}

// SurveyData is an inline questionnaire with its responses
type SurveyData struct {
	Questionnaire *domain.Questionnaire `json:"questionnaire" validate:"required"`
	Responses     []domain.Response     `json:"responses" validate:"dive"`
	DateRange     domain.DateRange      `json:"date_range"`
}

// AnalyticsRequest is the body of POST /api/analytics
type AnalyticsRequest struct {
	SurveyData
	IncludeInsights bool `json:"include_insights"`
}

// AnalyticsResponse is returned by the analytics endpoints
type AnalyticsResponse struct {
	Analytics *domain.AnalyticsBundle `json:"analytics"`
	Insights  *domain.InsightsBundle  `json:"insights,omitempty"`
}

// dateLayouts are accepted for the from and to query parameters
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDateRange reads the optional from and to query parameters. A bare
// date as the upper bound covers that whole day.
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	var dr domain.DateRange
	var fieldErrs []apierrors.ValidationError

	for _, p := range []struct {
		name  string
		dst   **time.Time
		upper bool
	}{
		{"from", &dr.From, false},
		{"to", &dr.To, true},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		t, dateOnly, err := parseTime(raw)
		if err != nil {
			fieldErrs = append(fieldErrs, apierrors.ValidationError{
				Field:   p.name,
				Message: fmt.Sprintf("%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", p.name),
			})
			continue
		}
		if dateOnly && p.upper {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		*p.dst = &t
	}

	if dr.From != nil && dr.To != nil && dr.From.After(*dr.To) {
		fieldErrs = append(fieldErrs, apierrors.ValidationError{Field: "from", Message: "from must not be after to"})
	}
	if len(fieldErrs) > 0 {
		return domain.DateRange{}, apierrors.NewValidationErrors(fieldErrs)
	}
	return dr, nil
}

func parseTime(raw string) (time.Time, bool, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), layout == "2006-01-02", nil
		}
		lastErr = err
	}
	return time.Time{}, false, lastErr
}
