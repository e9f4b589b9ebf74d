// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package api wires the HTTP surface: Chi routing, request middleware
// and the handlers that serve history queries, stats, health probes,
// Prometheus metrics and the proxied YouTube player scripts.
//
// HTML rendering is delegated through the Renderer interface; without a
// renderer the index falls back to the JSON representation, so the API
// is fully usable headless.
package api
