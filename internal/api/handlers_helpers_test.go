// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/service"
	"github.com/tomtom215/filmgraph/internal/validation"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind   service.Kind
		status int
		code   string
	}{
		{service.KindValidation, http.StatusBadRequest, ErrCodeValidationFailed},
		{service.KindConflict, http.StatusBadRequest, ErrCodeConflict},
		{service.KindNotFound, http.StatusNotFound, ErrCodeNotFound},
		{service.KindForbidden, http.StatusForbidden, ErrCodeForbidden},
		{service.KindInternal, http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			status, code := statusForKind(tt.kind)
			if status != tt.status || code != tt.code {
				t.Errorf("statusForKind(%s) = %d %s, want %d %s", tt.kind, status, code, tt.status, tt.code)
			}
		})
	}
}

func TestCountParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"missing uses default", "", 10, false},
		{"explicit", "count=3", 3, false},
		{"capped", "count=5000", 100, false},
		{"zero passes through", "count=0", 0, false},
		{"negative passes through", "count=-2", -2, false},
		{"not a number", "count=ten", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/films/popular?"+tt.query, nil)
			got, err := countParam(req, 10, 100)
			if tt.wantErr {
				if service.KindOf(err) != service.KindValidation {
					t.Fatalf("countParam() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("countParam() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("countParam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/films/popular?genreId=4&year=abc", nil)

	genreID, err := queryInt64(req, "genreId")
	if err != nil || genreID == nil || *genreID != 4 {
		t.Errorf("queryInt64(genreId) = %v, %v, want 4", genreID, err)
	}
	missing, err := queryInt64(req, "filmId")
	if err != nil || missing != nil {
		t.Errorf("queryInt64(filmId) = %v, %v, want nil", missing, err)
	}
	if _, err := queryInt64(req, "year"); service.KindOf(err) != service.KindValidation {
		t.Errorf("queryInt64(year) error = %v, want validation error", err)
	}
	if _, err := queryRequiredInt64(req, "userId"); service.KindOf(err) != service.KindValidation {
		t.Errorf("queryRequiredInt64(userId) error = %v, want validation error", err)
	}
}

func TestResourceOf(t *testing.T) {
	tests := map[string]string{
		"/films/3/like/1": "/films",
		"/users":          "/users",
		"/":               "/",
		"/reviews/":       "/reviews",
	}
	for path, want := range tests {
		if got := resourceOf(path); got != want {
			t.Errorf("resourceOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	got := sanitizeLogValue("line1\nline2\r\x7f")
	if strings.ContainsAny(got, "\n\r\x7f") {
		t.Errorf("sanitizeLogValue() left control characters: %q", got)
	}
	if !strings.Contains(got, `\x0a`) {
		t.Errorf("sanitizeLogValue() = %q, want escaped newline", got)
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"id":1}`))
	if a != generateETag([]byte(`{"id":1}`)) {
		t.Error("generateETag() is not deterministic")
	}
	if a == generateETag([]byte(`{"id":2}`)) {
		t.Error("generateETag() collides for different bodies")
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON envelope %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestRespondServiceError(t *testing.T) {
	verr := validation.NewRequestValidationError("name", "notblank", "name must not be blank", "")

	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		message     string
		wantDetails bool
	}{
		{"not found", service.NotFoundf("film %d not found", 9), http.StatusNotFound, ErrCodeNotFound, "film 9 not found", false},
		{"forbidden", service.Forbiddenf("not the author"), http.StatusForbidden, ErrCodeForbidden, "not the author", false},
		{"validation details", &service.Error{Kind: service.KindValidation, Message: verr.Error(), Err: verr}, http.StatusBadRequest, ErrCodeValidationFailed, verr.Error(), true},
		{"internal hidden", service.Internal("list films", errors.New("disk on fire")), http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage, false},
		{"plain error is internal", fmt.Errorf("boom"), http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, httptest.NewRequest(http.MethodGet, "/films", nil), tt.err)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Status != "error" || resp.Error == nil {
				t.Fatalf("envelope = %+v, want error status", resp)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.code)
			}
			if resp.Error.Message != tt.message {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.message)
			}
			if (resp.Error.Details != nil) != tt.wantDetails {
				t.Errorf("details = %v, want present %v", resp.Error.Details, tt.wantDetails)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Drama"}`, false},
		{"malformed", `{"name":`, true},
		{"wrong type", `{"name":5}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/genres", strings.NewReader(tt.body))
			var g models.Genre
			err := decodeJSON(httptest.NewRecorder(), req, &g)
			if tt.wantErr {
				if service.KindOf(err) != service.KindValidation {
					t.Errorf("decodeJSON() error = %v, want validation error", err)
				}
				return
			}
			if err != nil || g.Name != "Drama" {
				t.Errorf("decodeJSON() = %+v, %v", g, err)
			}
		})
	}
}
