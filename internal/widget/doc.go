// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package widget proxies the YouTube IFrame Player API scripts.
//
// The upstream iframe_api bootstrap loads a second script
// (www-widgetapi.js) from YouTube's CDN. This package fetches both once,
// rewrites the embedded reference so it points at the locally served path,
// and caches the pair in memory for the process lifetime, keeping the
// browser entirely off the upstream CDN.
//
// Fetching is guarded by a circuit breaker and a rate limiter: when the
// startup fetch fails, request-time retries cannot hammer a dead upstream.
package widget
