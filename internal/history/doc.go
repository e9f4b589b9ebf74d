// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package history aggregates raw watch events into a deduplicated,
// queryable in-memory table and answers filter/sort/paginate queries
// against it.
//
// The table is built once at startup and never mutated afterwards; queries
// are read-only projections computed on copies of the matched set.
package history
