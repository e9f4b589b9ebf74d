// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the process.
type Config struct {
	History  HistoryConfig  `koanf:"history"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Widget   WidgetConfig   `koanf:"widget"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// HistoryConfig locates the watch-history export to ingest at startup.
type HistoryConfig struct {
	File string `koanf:"file"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	MaxConnections int           `koanf:"max_connections"`
	DrainTimeout   time.Duration `koanf:"drain_timeout"`
}

// APIConfig controls query pagination bounds.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig controls rate limiting and CORS.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WidgetConfig controls the YouTube player script proxy.
type WidgetConfig struct {
	Enabled      bool          `koanf:"enabled"`
	IframeAPIURL string        `koanf:"iframe_api_url"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the file
// and environment layers.
func defaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			File: "watch-history.json",
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxConnections: 250,
			DrainTimeout:   10 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Widget: WidgetConfig{
			Enabled:      true,
			IframeAPIURL: "https://www.youtube.com/iframe_api",
			FetchTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate enforces cross-field constraints. It runs after all layers
// have been merged.
func (c *Config) Validate() error {
	if c.History.File == "" {
		return fmt.Errorf("history.file must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 0-65535", c.Server.Port)
	}
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("server.max_connections must be at least 1, got %d", c.Server.MaxConnections)
	}
	if c.Server.DrainTimeout <= 0 {
		return fmt.Errorf("server.drain_timeout must be positive, got %s", c.Server.DrainTimeout)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size %d is below api.default_page_size %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_requests must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Widget.Enabled && c.Widget.IframeAPIURL == "" {
		return fmt.Errorf("widget.iframe_api_url must not be empty when the widget proxy is enabled")
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error, fatal", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format)
	}
	return nil
}
