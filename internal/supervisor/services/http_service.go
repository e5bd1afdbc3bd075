// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
)

// defaultDrainTimeout applies when the caller passes a non-positive timeout.
const defaultDrainTimeout = 10 * time.Second

// Server is the part of *http.Server the service drives. Serve owns the
// listener and closes it on return.
type Server interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService binds the API address and serves it until the
// supervisor stops it.
//
//	server := &http.Server{Handler: router}
//	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
type HTTPServerService struct {
	srv   Server
	addr  string
	drain time.Duration
}

// NewHTTPServerService serves srv on addr. drain bounds how long in-flight
// requests may run after a stop.
func NewHTTPServerService(srv Server, addr string, drain time.Duration) *HTTPServerService {
	if drain <= 0 {
		drain = defaultDrainTimeout
	}
	return &HTTPServerService{srv: srv, addr: addr, drain: drain}
}

// Serve binds addr before serving, so a taken port fails this call instead
// of a background goroutine. A server closed by someone else ends cleanly.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bind api address %s: %w", s.addr, err)
	}
	logging.Info().Str("addr", ln.Addr().String()).Msg("API listening")

	served := make(chan error, 1)
	go func() { served <- s.srv.Serve(ln) }()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve api on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	logging.Info().Dur("drain", s.drain).Msg("Draining API connections")
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drain)
	defer cancel()
	if err := s.srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain api connections: %w", err)
	}
	<-served
	return ctx.Err()
}

func (s *HTTPServerService) String() string {
	return "http-server"
}
