// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package logging provides centralized zerolog-based logging for Rewind.
//
// The package exposes a global logger configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("file", path).Msg("History loaded")
//
// Request-scoped logging with an attached request ID goes through Ctx:
//
//	logging.Ctx(r.Context()).Debug().Msg("Query executed")
//
// Environment variables LOG_LEVEL, LOG_FORMAT and LOG_CALLER feed the
// corresponding Config fields via the config package.
package logging
