// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/mkarlsen/rewind/internal/logging"
	"github.com/mkarlsen/rewind/internal/metrics"
)

const (
	// DefaultMaxConnections is the connection permit pool size.
	DefaultMaxConnections = 250

	// defaultBackoffUnit is the initial accept retry delay. Each retry
	// doubles it; once the delay exceeds 64 units the next failure is
	// fatal.
	defaultBackoffUnit = 1 * time.Second
	maxBackoffUnits    = 64
)

// ErrAcceptRetriesExhausted wraps the accept error that survived the
// full backoff schedule.
var ErrAcceptRetriesExhausted = errors.New("accept retries exhausted")

// BoundedListener is a net.Listener that caps concurrently open
// connections. Accept acquires a permit before accepting; the permit is
// released when the returned connection is closed. When all permits are
// out, Accept blocks until one frees.
type BoundedListener struct {
	inner   net.Listener
	permits chan struct{}
	unit    time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewBoundedListener wraps ln with a permit pool of the given size.
// Non-positive values fall back to DefaultMaxConnections.
func NewBoundedListener(ln net.Listener, maxConns int) *BoundedListener {
	return newBoundedListener(ln, maxConns, defaultBackoffUnit)
}

func newBoundedListener(ln net.Listener, maxConns int, unit time.Duration) *BoundedListener {
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	return &BoundedListener{
		inner:   ln,
		permits: make(chan struct{}, maxConns),
		unit:    unit,
		done:    make(chan struct{}),
	}
}

// Accept waits for a free permit, then accepts the next connection.
// Transient accept errors retry with doubling backoff starting at one
// unit; an error arriving after the delay has grown past 64 units is
// returned wrapped in ErrAcceptRetriesExhausted.
func (l *BoundedListener) Accept() (net.Conn, error) {
	select {
	case l.permits <- struct{}{}:
	case <-l.done:
		return nil, net.ErrClosed
	}

	backoff := l.unit
	for {
		conn, err := l.inner.Accept()
		if err == nil {
			metrics.ListenerAcceptedTotal.Inc()
			metrics.ListenerActiveConnections.Inc()
			return &permitConn{Conn: conn, release: l.release}, nil
		}
		if errors.Is(err, net.ErrClosed) {
			l.release()
			return nil, err
		}
		if backoff > maxBackoffUnits*l.unit {
			l.release()
			return nil, fmt.Errorf("%w: %w", ErrAcceptRetriesExhausted, err)
		}

		metrics.ListenerAcceptRetriesTotal.Inc()
		logging.Warn().
			Err(err).
			Dur("backoff", backoff).
			Msg("Accept failed, retrying")

		select {
		case <-time.After(backoff):
		case <-l.done:
			l.release()
			return nil, net.ErrClosed
		}
		backoff *= 2
	}
}

// Close closes the wrapped listener and unblocks any Accept waiting on
// a permit.
func (l *BoundedListener) Close() error {
	l.closeOnce.Do(func() { close(l.done) })
	return l.inner.Close()
}

// Addr returns the wrapped listener's address.
func (l *BoundedListener) Addr() net.Addr {
	return l.inner.Addr()
}

func (l *BoundedListener) release() {
	select {
	case <-l.permits:
	default:
	}
}

// permitConn ties a connection permit to the connection's lifetime.
// Close may be called more than once (http.Server does on abort paths);
// the permit is returned exactly once.
type permitConn struct {
	net.Conn
	release func()
	once    sync.Once
}

func (c *permitConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() {
		metrics.ListenerActiveConnections.Dec()
		c.release()
	})
	return err
}
