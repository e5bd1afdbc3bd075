// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package logging provides centralized zerolog-based structured logging for Filmgraph.
//
// A single global zerolog.Logger is configured once at startup and accessed
// through package-level helpers. Handlers and services that have a request
// context should prefer Ctx so that request and correlation IDs are attached
// to every line.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Debug().Int64("film_id", id).Msg("Film created")
//
// # Configuration
//
// Environment Variables (read through internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # slog Bridge
//
// Libraries that expect a *slog.Logger (sutureslog in particular) are given
// NewSlogLogger(component), which forwards records into the same zerolog
// output.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and use typed fields
// rather than Msgf:
//
//	logging.Info().Int("count", n).Msg("Films loaded")   // Correct
//	logging.Info().Msgf("loaded %d films", n)            // Avoid
package logging
