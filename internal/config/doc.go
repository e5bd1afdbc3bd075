// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package config loads Filmgraph configuration using koanf.
//
// Sources are layered in order of increasing priority:
//
//  1. Struct defaults (defaultConfig)
//  2. YAML file: $CONFIG_PATH, ./config.yaml, or /etc/filmgraph/config.yaml
//  3. Environment variables
//
// # Environment Variables
//
//	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
//	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, SEED_DATA
//	API_DEFAULT_COUNT, API_MAX_COUNT
//	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	CORS_ORIGINS (comma-separated)
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// # Example YAML
//
//	server:
//	  port: 8080
//	database:
//	  path: /data/filmgraph.duckdb
//	  max_memory: 2GB
//	api:
//	  cors_origins: ["https://films.example.com"]
//	logging:
//	  level: debug
//	  format: console
package config
