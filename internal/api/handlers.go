// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/service"
)

// Handler contains dependencies for API handlers
type Handler struct {
	svc       *service.Services
	db        *database.DB
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(service.New(db), db, cfg)
//	http.ListenAndServe(cfg.Server.Addr(), api.NewRouter(handler))
func NewHandler(svc *service.Services, db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		svc:       svc,
		db:        db,
		config:    cfg,
		startTime: time.Now(),
	}
}

// count reads the count query parameter with the configured default and cap.
func (h *Handler) count(r *http.Request) (int, error) {
	return countParam(r, h.config.API.DefaultCount, h.config.API.MaxCount)
}
