package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Handlers groups the API handlers mounted by RegisterRoutes
type Handlers struct {
	Analysis  *AnalysisHandler
	Analytics *AnalyticsHandler
	Export    *ExportHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the /api tree on r
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		if h.Health != nil {
			r.Get("/health", h.Health.HealthCheck)
			r.Get("/health/ready", h.Health.ReadinessCheck)
			r.Get("/health/live", h.Health.LivenessCheck)
			r.Get("/version", h.Health.Version)
		}

		r.Mount("/analysis", h.Analysis.Routes())
		r.Post("/analytics", h.Analytics.Analyze)
		r.Post("/export", h.Export.Export)

		r.Route("/questionnaires/{id}", func(r chi.Router) {
			h.Analytics.QuestionnaireRoutes(r)
			h.Export.QuestionnaireRoutes(r)
		})
	})
}
