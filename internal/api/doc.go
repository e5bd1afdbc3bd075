// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package api exposes the Filmgraph services over HTTP using the Chi router.

Handler files:
  - handlers.go: Handler struct and constructor
  - handlers_helpers.go: response envelope, JSON decoding, parameter parsing
  - handlers_health.go: health endpoint
  - handlers_films.go: films, likes, popular, common, search, director films
  - handlers_users.go: users, friendships, feed, recommendations
  - handlers_reviews.go: reviews and review votes
  - handlers_catalog.go: directors, genres and MPA ratings

Every response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 2}
	}

Errors returned by the service layer are mapped by kind:

	Validation  400 VALIDATION_FAILED
	Conflict    400 CONFLICT
	NotFound    404 NOT_FOUND
	Forbidden   403 FORBIDDEN
	Internal    500 INTERNAL_ERROR (message is not exposed)

Middleware (router.go), outermost first: request id, real IP, panic recovery,
CORS, Prometheus metrics, compression and per-IP rate limiting. /metrics and
/swagger/* sit outside the rate limiter.
*/
package api
