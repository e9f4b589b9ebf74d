// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkarlsen/rewind/internal/api"
	"github.com/mkarlsen/rewind/internal/config"
	"github.com/mkarlsen/rewind/internal/logging"
	"github.com/mkarlsen/rewind/internal/metrics"
	"github.com/mkarlsen/rewind/internal/server"
	"github.com/mkarlsen/rewind/internal/store"
	"github.com/mkarlsen/rewind/internal/supervisor"
	"github.com/mkarlsen/rewind/internal/takeout"
	"github.com/mkarlsen/rewind/internal/widget"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rewind: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("file", cfg.History.File).Msg("Starting rewind")

	// Ingest the export before anything listens. A bad export fails the
	// whole startup; there is no partially populated server.
	table, err := takeout.Load(cfg.History.File)
	if err != nil {
		return fmt.Errorf("ingest watch history: %w", err)
	}
	metrics.RecordIngest(table.RawEvents, table.DistinctItems)

	st := store.New(table)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var widgetClient *widget.Client
	if cfg.Widget.Enabled {
		widgetClient = widget.NewClient(widget.Config{
			IframeAPIURL: cfg.Widget.IframeAPIURL,
			FetchTimeout: cfg.Widget.FetchTimeout,
		})
		// Warm the cache. Failure is not fatal: the client refetches
		// lazily on the first player request.
		if _, err := widgetClient.Scripts(ctx); err != nil {
			logging.Warn().Err(err).Msg("Player script prefetch failed, will retry on demand")
		}
	}

	handler := api.NewHandler(st, widgetClient, nil, api.HandlerConfig{
		DefaultPageSize: cfg.API.DefaultPageSize,
		MaxPageSize:     cfg.API.MaxPageSize,
	})
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	srv := server.New(server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		MaxConnections: cfg.Server.MaxConnections,
		DrainTimeout:   cfg.Server.DrainTimeout,
	}, router.Setup())

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(srv)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
