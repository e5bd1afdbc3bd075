// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"
	"time"
)

// HealthStatus reports service liveness and database connectivity.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime"`
}

// Version is reported by the health endpoint.
var Version = "1.0.0"

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns database connectivity and uptime. Status is "degraded" when the database is unreachable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=api.HealthStatus}
// @Failure 503 {object} models.APIResponse{data=api.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	health := HealthStatus{
		Status:            "healthy",
		Version:           Version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	status := http.StatusOK
	if !dbConnected {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	respondData(w, r, status, health, start)
}
