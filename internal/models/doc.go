// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package models defines the shared data structures of Rewind: raw watch
// events, aggregated per-video records, filter requests, pagination
// metadata, and the standard API response envelope.
package models
