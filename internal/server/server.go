// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/mkarlsen/rewind/internal/logging"
)

const (
	// DefaultDrainTimeout bounds how long graceful shutdown waits for
	// in-flight requests before closing their connections.
	DefaultDrainTimeout = 10 * time.Second

	defaultReadHeaderTimeout = 10 * time.Second
)

// Config controls the listener and shutdown behavior.
type Config struct {
	Host           string
	Port           int
	MaxConnections int           // permit pool size, defaults to DefaultMaxConnections
	DrainTimeout   time.Duration // defaults to DefaultDrainTimeout
}

// Server is the supervised HTTP front end. It binds lazily in Serve so
// a failed bind surfaces through the supervision tree rather than at
// construction time.
type Server struct {
	cfg     Config
	handler http.Handler

	// backoffUnit is the accept retry unit, overridable in tests.
	backoffUnit time.Duration

	mu   sync.Mutex
	addr net.Addr
}

// New creates a Server that will serve handler on cfg's address.
func New(cfg Config, handler http.Handler) *Server {
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = DefaultDrainTimeout
	}
	return &Server{
		cfg:         cfg,
		handler:     handler,
		backoffUnit: defaultBackoffUnit,
	}
}

// Serve implements suture.Service. It binds the TCP listener, serves
// HTTP over the connection-bounded wrapper, and on context cancellation
// drains in-flight requests within the configured timeout.
//
// Bind failures and exhausted accept retries are unrecoverable, so they
// are joined with suture.ErrTerminateSupervisorTree to bring the whole
// tree down instead of restarting into the same failure.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Join(fmt.Errorf("bind %s: %w", addr, err), suture.ErrTerminateSupervisorTree)
	}
	bounded := newBoundedListener(ln, s.cfg.MaxConnections, s.backoffUnit)

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	logging.Info().
		Str("addr", addr).
		Int("max_connections", cap(bounded.permits)).
		Msg("HTTP server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(bounded); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Join(fmt.Errorf("http server failed: %w", err), suture.ErrTerminateSupervisorTree)
		}
		return nil

	case <-ctx.Done():
		// The parent context is already canceled; the drain gets its own.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.DrainTimeout)
		defer cancel()

		logging.Info().
			Dur("drain_timeout", s.cfg.DrainTimeout).
			Msg("Draining HTTP server")

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("Drain timed out, closing remaining connections")
			_ = srv.Close()
		}
		<-errCh
		return ctx.Err()
	}
}

// Addr returns the bound listener address, or nil before Serve has
// bound it. Useful when the configured port is 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// String identifies the service in supervisor logs.
func (s *Server) String() string {
	return "http-server"
}
