// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package middleware provides the HTTP middleware Filmgraph adds on top of the
Chi ecosystem.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and stores it, plus a fresh
    correlation id, in the request context for logging.Ctx.
  - PrometheusMetrics: counts requests and records latency per route pattern,
    method and status, and tracks in-flight requests.

Both follow the Chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

The metrics endpoint label is the matched Chi route pattern such as
"/films/{id}", never the raw path, so ids do not explode label cardinality.
*/
package middleware
