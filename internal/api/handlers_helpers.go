// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/service"
	"github.com/tomtom215/filmgraph/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// metadataFor builds response metadata for a request that started at start.
func metadataFor(r *http.Request, start time.Time) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now(),
		RequestID:   logging.RequestIDFromContext(r.Context()),
		QueryTimeMS: time.Since(start).Milliseconds(),
	}
}

// respondData sends a success envelope around data.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadataFor(r, start),
	})
}

// respondNoContent acknowledges a mutation with no body.
func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: metadataFor(r, time.Now()),
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondServiceError maps err to a status by its service kind. Internal
// errors are logged and their message withheld.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForKind(service.KindOf(err))

	if status == http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
		respondError(w, r, status, code, internalErrorMessage, nil)
		return
	}

	var details map[string]interface{}
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		details = verr.Details()
	}

	message := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		message = se.Message
	}
	respondError(w, r, status, code, message, details)
}

// decodeJSON reads the request body into v. Failures are Validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return service.Validationf("request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return service.Validationf("invalid JSON body: %v", err)
	}
	return nil
}

// pathID parses the named URL parameter as an id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, service.Validationf("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}

// pathIDs parses two URL parameters.
func pathIDs(r *http.Request, first, second string) (int64, int64, error) {
	a, err := pathID(r, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := pathID(r, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// queryInt64 parses an optional integer query parameter. A missing parameter
// returns nil.
func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, service.Validationf("%s must be an integer, got %q", key, raw)
	}
	return &v, nil
}

// queryRequiredInt64 parses a mandatory integer query parameter.
func queryRequiredInt64(r *http.Request, key string) (int64, error) {
	v, err := queryInt64(r, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, service.Validationf("%s is required", key)
	}
	return *v, nil
}

// countParam reads the count query parameter. A missing count yields
// defaultCount and values above maxCount are capped. Non-positive values are
// passed through for the service to judge.
func countParam(r *http.Request, defaultCount, maxCount int) (int, error) {
	v, err := queryInt64(r, "count")
	if err != nil {
		return 0, err
	}
	if v == nil {
		return defaultCount, nil
	}
	count := int(*v)
	if maxCount > 0 && count > maxCount {
		count = maxCount
	}
	return count, nil
}

// pairAction is a mutation addressed by two ids, such as a like or a vote.
type pairAction func(ctx context.Context, first, second int64) error

// respondPairAction parses two path ids, applies action and answers 204.
func respondPairAction(w http.ResponseWriter, r *http.Request, first, second string, action pairAction) {
	a, b, err := pathIDs(r, first, second)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := action(r.Context(), a, b); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondNoContent(w)
}
