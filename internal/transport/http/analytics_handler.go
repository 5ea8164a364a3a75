package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "surveypulse/internal/errors"
	"surveypulse/internal/middleware"
	"surveypulse/internal/statistics"
)

// AnalyticsHandler serves aggregate analytics and insights
type AnalyticsHandler struct {
	service      AnalyticsService
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsService, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "analytics_handler")),
	}
}

// QuestionnaireRoutes registers the per-questionnaire routes on r, which is
// expected to carry an {id} URL parameter
func (h *AnalyticsHandler) QuestionnaireRoutes(r chi.Router) {
	r.Get("/analytics", h.GetAnalytics)
	r.Get("/insights", h.GetInsights)
}

// Analyze handles POST /api/analytics with inline survey data
func (h *AnalyticsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyticsRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	responses := statistics.FilterByDateRange(req.Responses, req.DateRange)
	bundle, err := h.service.Analyze(r.Context(), req.Questionnaire, responses)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := AnalyticsResponse{Analytics: bundle}
	if req.IncludeInsights {
		insights := h.service.GenerateInsights(r.Context(), bundle)
		resp.Insights = &insights
	}
	render.JSON(w, r, resp)
}

// GetAnalytics handles GET /api/questionnaires/{id}/analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	bundle, err := h.service.AnalyzeQuestionnaire(r.Context(), chi.URLParam(r, "id"), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, AnalyticsResponse{Analytics: bundle})
}

// GetInsights handles GET /api/questionnaires/{id}/insights
func (h *AnalyticsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Insights(r.Context(), chi.URLParam(r, "id"), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, AnalyticsResponse{Analytics: report.Analytics, Insights: &report.Insights})
}
