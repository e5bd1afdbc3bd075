// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/filmgraph/internal/logging"
)

// serveRequestID runs one request through RequestID and returns the id seen
// by the handler, the correlation id and the response header.
func serveRequestID(t *testing.T, incoming string) (ctxID, correlationID, header string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return ctxID, correlationID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name      string
		incoming  string
		wantKept  bool
		wantValid bool
	}{
		{"generates when missing", "", false, true},
		{"keeps upstream id", "proxy-abc-123", true, false},
		{"keeps id at max length", strings.Repeat("a", maxRequestIDLength), true, false},
		{"replaces overlong id", strings.Repeat("b", maxRequestIDLength+1), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctxID, correlationID, header := serveRequestID(t, tt.incoming)

			if header == "" {
				t.Fatal("expected X-Request-ID response header")
			}
			if ctxID != header {
				t.Errorf("context id = %q, header = %q", ctxID, header)
			}
			if tt.wantKept && header != tt.incoming {
				t.Errorf("header = %q, want upstream %q", header, tt.incoming)
			}
			if tt.wantValid {
				if _, err := uuid.Parse(header); err != nil {
					t.Errorf("generated id %q is not a UUID: %v", header, err)
				}
			}
			if correlationID == "" {
				t.Error("expected correlation id in context")
			}
		})
	}
}

func TestRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		_, _, header := serveRequestID(t, "")
		if seen[header] {
			t.Fatalf("duplicate request id %q", header)
		}
		seen[header] = true
	}
}
