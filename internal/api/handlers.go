// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mkarlsen/rewind/internal/history"
	"github.com/mkarlsen/rewind/internal/logging"
	"github.com/mkarlsen/rewind/internal/metrics"
	"github.com/mkarlsen/rewind/internal/models"
	"github.com/mkarlsen/rewind/internal/store"
	"github.com/mkarlsen/rewind/internal/widget"
)

// Renderer turns a queried page into HTML. The index endpoint serves
// whatever the renderer produces; with no renderer installed it serves
// the JSON representation instead.
type Renderer interface {
	RenderIndex(w io.Writer, data IndexData) error
}

// IndexData is everything a renderer needs for the index page.
type IndexData struct {
	Items    []models.Video
	Page     models.PageInfo
	Filter   models.HistoryFilter
	Orders   []models.Order
	Timeline []time.Time
}

// HandlerConfig bounds request pagination.
type HandlerConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Handler serves every route. widgetClient and renderer are optional;
// nil disables the player proxy and HTML rendering respectively.
type Handler struct {
	store        *store.Store
	widgetClient *widget.Client
	renderer     Renderer
	cfg          HandlerConfig
	validate     *validator.Validate
}

// NewHandler creates a Handler over the shared store.
func NewHandler(st *store.Store, widgetClient *widget.Client, renderer Renderer, cfg HandlerConfig) *Handler {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = models.DefaultLimit
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &Handler{
		store:        st,
		widgetClient: widgetClient,
		renderer:     renderer,
		cfg:          cfg,
		validate:     validator.New(),
	}
}

// query runs one filtered, ordered, paginated read against the table.
func (h *Handler) query(f models.HistoryFilter) (models.HistoryResponse, time.Duration) {
	start := time.Now()

	var resp models.HistoryResponse
	h.store.WithTable(func(t *history.Table) {
		page, items := t.Query(f)
		resp = models.HistoryResponse{
			Items:         items,
			Page:          page,
			TotalRaw:      t.RawEvents,
			TotalDistinct: t.DistinctItems,
			Timeline:      t.Timeline,
		}
	})

	elapsed := time.Since(start)
	metrics.RecordQuery(elapsed)
	return resp, elapsed
}

// Index serves the landing page: the same query surface as the history
// endpoint, rendered to HTML when a renderer is installed.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		respondValidationError(w, err)
		return
	}

	resp, elapsed := h.query(f)

	if h.renderer == nil {
		respondSuccess(w, resp, elapsed)
		return
	}

	data := IndexData{
		Items:    resp.Items,
		Page:     resp.Page,
		Filter:   f,
		Orders:   models.Orders(),
		Timeline: resp.Timeline,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Index render failed")
	}
}

// History serves the filtered, ordered, paginated history as JSON.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseFilter(r)
	if err != nil {
		respondValidationError(w, err)
		return
	}

	resp, elapsed := h.query(f)
	respondSuccess(w, resp, elapsed)
}

// Stats serves table-level aggregates.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var resp models.StatsResponse
	h.store.WithTable(func(t *history.Table) {
		resp = models.StatsResponse{
			TotalRaw:      t.RawEvents,
			TotalDistinct: t.DistinctItems,
		}
		if len(t.Timeline) > 0 {
			first := t.Timeline[0]
			last := t.Timeline[len(t.Timeline)-1]
			resp.FirstEvent = &first
			resp.LastEvent = &last
		}
	})

	respondSuccess(w, resp, time.Since(start))
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, 0)
}

// HealthReady reports readiness to serve queries. The table is built
// before the listener starts, so readiness only checks it is present.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	var distinct int
	h.store.WithTable(func(t *history.Table) {
		distinct = t.DistinctItems
	})
	respondSuccess(w, map[string]interface{}{
		"status":              "ready",
		"distinct_item_count": distinct,
	}, 0)
}

// IframeAPI serves the rewritten player bootstrap script.
func (h *Handler) IframeAPI(w http.ResponseWriter, r *http.Request) {
	h.serveScript(w, r, func(s *widget.Scripts) []byte { return s.IframeAPI })
}

// WidgetAPI serves the second-stage player script.
func (h *Handler) WidgetAPI(w http.ResponseWriter, r *http.Request) {
	h.serveScript(w, r, func(s *widget.Scripts) []byte { return s.WidgetAPI })
}

func (h *Handler) serveScript(w http.ResponseWriter, r *http.Request, pick func(*widget.Scripts) []byte) {
	if h.widgetClient == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "player proxy is disabled", nil)
		return
	}

	scripts, err := h.widgetClient.Scripts(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Player script unavailable")
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "player script unavailable", nil)
		return
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(pick(scripts))
}
