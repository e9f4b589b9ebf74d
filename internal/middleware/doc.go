// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package middleware provides HTTP middleware shared by all routes:
// request ID propagation and Prometheus request instrumentation.
// Middleware here uses the http.HandlerFunc shape; the api package
// adapts it to Chi's func(http.Handler) http.Handler.
package middleware
