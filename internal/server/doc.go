// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package server runs the HTTP listener with a hard connection bound.
//
// The listener hands out a fixed pool of connection permits. Accept
// blocks while the pool is exhausted, so the process never holds more
// than the configured number of open client connections; a permit
// returns to the pool when its connection closes. Transient accept
// failures retry with doubling backoff, and persistent failure is
// treated as fatal for the whole supervision tree.
//
// Server wraps the listener and an http.Server as a suture.Service:
// context cancellation triggers a graceful drain that lets in-flight
// requests finish before the service returns.
package server
