// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package main is the entry point for the Filmgraph server.
//
// Filmgraph keeps a film catalog with a social layer on top: users like
// films, befriend each other, write and vote on reviews, and get an activity
// feed and film recommendations. Everything is stored in DuckDB and served
// over a JSON REST API.
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog configured from the logging section
//  3. Database: DuckDB opened, schema created, dictionaries seeded
//  4. Services and router: chi handlers over the service layer
//  5. Supervisor tree: checkpoint service in the data layer, HTTP server in
//     the API layer
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	DUCKDB_PATH=/data/filmgraph.duckdb
//	CHECKPOINT_INTERVAL=5m
//	LOG_LEVEL=debug
//	LOG_FORMAT=console
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server (in-flight requests drain within server.shutdown_timeout), then the
// database is closed with a final checkpoint.
package main
