// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package takeout ingests a Google Takeout watch-history export.
//
// Ingestion is a three-step pipeline: a keyword sniffer classifies the
// file's schema version by scanning for a required marker set, the matching
// schema decoder deserializes the JSON array and normalizes its free-form
// fields (video IDs from URLs, title prefixes, first-of-array channels),
// and the history package aggregates the resulting events into the
// queryable table.
//
// Exactly one schema version is recognized today. The format dispatch is
// open so additional versions slot in without touching the aggregation
// engine.
package takeout
