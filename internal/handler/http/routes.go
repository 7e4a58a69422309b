package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getVersion)

	router.Route("/api/runs", func(r chi.Router) {
		r.Get("/", h.listRuns)
		r.Get("/{id}", h.getRun)
	})

	router.Route("/api/sync", func(r chi.Router) {
		r.Post("/", h.syncAll)
		r.Post("/{channel}", h.syncChannel)
	})

	return router
}
