// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package store holds the process-wide shared state behind a single mutex.
//
// The history table is built once at startup and shared by reference across
// every connection handler. Access is exclusive: one query computes at a
// time, and the lock is held only for the span of that computation, never
// across a whole connection.
package store

import (
	"sync"

	"github.com/mkarlsen/rewind/internal/history"
)

// Store guards the aggregated history table.
type Store struct {
	mu    sync.Mutex
	table *history.Table
}

// New creates a store around the given table.
func New(table *history.Table) *Store {
	return &Store{table: table}
}

// WithTable runs fn with exclusive access to the table. fn must not retain
// the table pointer or block on anything beyond the query computation.
func (s *Store) WithTable(fn func(t *history.Table)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.table)
}
