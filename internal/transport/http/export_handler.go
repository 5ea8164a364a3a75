package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "surveypulse/internal/errors"
	"surveypulse/internal/exporter"
	"surveypulse/internal/middleware"
	"surveypulse/internal/statistics"
)

// ExportHandler streams rendered exports
type ExportHandler struct {
	service      ExportService
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ExportService, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "export_handler")),
	}
}

// QuestionnaireRoutes registers the per-questionnaire export route
func (h *ExportHandler) QuestionnaireRoutes(r chi.Router) {
	r.Get("/export", h.ExportQuestionnaire)
}

// ExportQuestionnaire handles GET /api/questionnaires/{id}/export?format=
func (h *ExportHandler) ExportQuestionnaire(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.ExportQuestionnaire(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("format"), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.write(w, r, result)
}

// Export handles POST /api/export?format= with inline survey data
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req SurveyData
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	responses := statistics.FilterByDateRange(req.Responses, req.DateRange)
	result, err := h.service.Export(r.Context(), r.URL.Query().Get("format"), req.Questionnaire, responses)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.write(w, r, result)
}

func (h *ExportHandler) write(w http.ResponseWriter, r *http.Request, result *exporter.Result) {
	etag := strconv.Quote(result.Digest)
	w.Header().Set("ETag", etag)

	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.Header().Set("X-Record-Count", strconv.Itoa(result.RecordCount))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(result.Content); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export",
			slog.String("file_name", result.FileName),
			slog.String("error", err.Error()))
	}
}
