// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"

	"github.com/tomtom215/filmgraph/internal/service"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// internalErrorMessage replaces the message of Internal errors in responses.
const internalErrorMessage = "internal error"

// statusForKind maps a service error kind to an HTTP status and error code.
// A duplicate review is reported as a client error, hence Conflict is 400.
func statusForKind(kind service.Kind) (int, string) {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest, ErrCodeValidationFailed
	case service.KindConflict:
		return http.StatusBadRequest, ErrCodeConflict
	case service.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case service.KindForbidden:
		return http.StatusForbidden, ErrCodeForbidden
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
