// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Command server runs the Rewind HTTP server: it ingests a Takeout
// watch-history export at startup and serves the aggregated history
// over a connection-bounded listener until interrupted.
package main
