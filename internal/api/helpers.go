// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/mkarlsen/rewind/internal/logging"
	"github.com/mkarlsen/rewind/internal/models"
)

// parseFilter builds a HistoryFilter from the request query string.
// Omitted parameters take their defaults; an unparseable or out-of-range
// parameter fails the request. The limit is clamped to the configured
// maximum rather than rejected.
func (h *Handler) parseFilter(r *http.Request) (models.HistoryFilter, error) {
	q := r.URL.Query()
	f := models.DefaultHistoryFilter()
	f.Limit = h.cfg.DefaultPageSize

	if v := q.Get("order"); v != "" {
		order, err := models.ParseOrder(v)
		if err != nil {
			return f, err
		}
		f.Order = order
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid page %q", v)
		}
		f.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		if limit > h.cfg.MaxPageSize {
			limit = h.cfg.MaxPageSize
		}
		f.Limit = limit
	}

	if v := q.Get("id"); v != "" {
		f.ID = &v
	}
	if v := q.Get("title"); v != "" {
		f.Title = &v
	}
	if v := q.Get("channel_name"); v != "" {
		f.ChannelName = &v
	}

	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid from timestamp %q", v)
		}
		f.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid to timestamp %q", v)
		}
		f.To = &ts
	}

	if err := h.validate.Struct(f); err != nil {
		return f, err
	}
	return f, nil
}

// respondSuccess writes the standard success envelope.
func respondSuccess(w http.ResponseWriter, data interface{}, queryTime time.Duration) {
	resp := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	resp := models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	writeJSON(w, status, resp)
}

func respondValidationError(w http.ResponseWriter, err error) {
	respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Error encoding response")
	}
}
