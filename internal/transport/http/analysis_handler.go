package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "surveypulse/internal/errors"
	"surveypulse/internal/middleware"
	"surveypulse/internal/services"
)

// AnalysisHandler serves single text and single response analysis
type AnalysisHandler struct {
	service      AnalyticsService
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalyticsService, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "analysis_handler")),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/text", h.AnalyzeText)
	r.Post("/quality", h.ScoreQuality)
	return r
}

// AnalyzeText handles POST /api/analysis/text
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, h.service.AnalyzeText(r.Context(), req.Text))
}

// ScoreQuality handles POST /api/analysis/quality
func (h *AnalysisHandler) ScoreQuality(w http.ResponseWriter, r *http.Request) {
	var req services.QualityRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, h.service.ScoreQuality(r.Context(), req))
}
