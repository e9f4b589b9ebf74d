// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, UPSTREAM_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HistoryResponse is the payload of the history query endpoint: the
// windowed item set plus pagination metadata and the table-level aggregates.
type HistoryResponse struct {
	Items         []Video     `json:"items"`
	Page          PageInfo    `json:"page"`
	TotalRaw      int         `json:"total_raw_event_count"`
	TotalDistinct int         `json:"distinct_item_count"`
	Timeline      []time.Time `json:"global_timeline"`
}

// StatsResponse is the payload of the stats endpoint.
type StatsResponse struct {
	TotalRaw      int        `json:"total_raw_event_count"`
	TotalDistinct int        `json:"distinct_item_count"`
	FirstEvent    *time.Time `json:"first_event,omitempty"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}
