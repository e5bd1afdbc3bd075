// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto when the
// package is imported.
//
// Database:
//
//	duckdb_query_duration_seconds{operation,table}
//	duckdb_query_errors_total{operation,table,error_type}
//	duckdb_transaction_retries_total
//
// API:
//
//	api_requests_total{method,endpoint,status_code}
//	api_request_duration_seconds{method,endpoint}
//	api_active_requests
//	api_rate_limit_hits_total{endpoint}
//
// Domain:
//
//	feed_events_total{event_type,operation}
//	recommendation_duration_seconds
//	recommendation_requests_total{outcome}
//	recommendation_films_returned
//
// The endpoint label is the chi route pattern (for example /films/{id}), never
// the raw path, so label cardinality stays bounded.
package metrics
