// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/filmgraph/internal/middleware"
	"github.com/tomtom215/filmgraph/internal/models"
)

// compressionLevel is the gzip level used by chi's Compress middleware.
const compressionLevel = 5

// NewRouter builds the HTTP routes over handler.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(newCORS(&handler.config.API))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API
	r.Group(func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(compressionLevel))
		r.Use(newRateLimit(&handler.config.API))

		r.Get("/health", handler.Health)
		r.Route("/films", handler.mountFilms)
		r.Route("/users", handler.mountUsers)
		r.Route("/reviews", handler.mountReviews)
		r.Route("/directors", func(r chi.Router) {
			mountCatalog[models.Director](r, handler.svc.Directors)
		})
		r.Route("/genres", func(r chi.Router) {
			mountCatalog[models.Genre](r, handler.svc.Genres)
		})
		r.Route("/mpa", func(r chi.Router) {
			mountCatalog[models.MpaRating](r, handler.svc.Mpa)
		})
	})

	return r
}
