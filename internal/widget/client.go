// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mkarlsen/rewind/internal/logging"
	"github.com/mkarlsen/rewind/internal/metrics"
)

const (
	// DefaultIframeAPIURL is the upstream bootstrap script for the
	// YouTube IFrame Player API.
	DefaultIframeAPIURL = "https://www.youtube.com/iframe_api"

	// LocalWidgetAPIPath is where the rewritten bootstrap sends the
	// browser for the second-stage script.
	LocalWidgetAPIPath = "/www-widgetapi.js"

	defaultFetchTimeout = 10 * time.Second

	// Upstream fetches only happen on a cache miss, so the limiter can
	// be tight. One refetch attempt every 10s with a small burst covers
	// server startup races without leaking load to YouTube.
	refetchInterval = 10 * time.Second
	refetchBurst    = 2
)

// The bootstrap script references its second stage as
// var scriptUrl = 'https:\/\/www.youtube.com\/s\/player\/...\/www-widgetapi.js';
var scriptURLPattern = regexp.MustCompile(`var scriptUrl = '(.*?)';`)

var (
	// ErrScriptURLNotFound means the upstream bootstrap no longer embeds
	// a scriptUrl assignment this package knows how to rewrite.
	ErrScriptURLNotFound = errors.New("widget: scriptUrl not found in iframe_api response")

	// ErrThrottled means a cache-miss refetch was suppressed by the
	// local rate limiter.
	ErrThrottled = errors.New("widget: upstream refetch throttled")
)

// Scripts holds the proxied player scripts, ready to serve.
type Scripts struct {
	IframeAPI []byte // bootstrap, rewritten to load LocalWidgetAPIPath
	WidgetAPI []byte // second stage, fetched from the rewritten origin URL
}

// Config controls the upstream fetch.
type Config struct {
	IframeAPIURL string        // defaults to DefaultIframeAPIURL
	FetchTimeout time.Duration // per-request timeout, defaults to 10s
}

// Client fetches, rewrites and caches the player scripts.
//
// The first successful fetch is cached for the process lifetime. Misses
// retry lazily on demand, behind a rate limiter and a circuit breaker so
// a dead upstream degrades to fast local failures.
type Client struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*Scripts]

	mu     sync.Mutex
	cached *Scripts
}

// NewClient creates a Client. It does not contact the upstream; call
// Scripts to populate the cache.
func NewClient(cfg Config) *Client {
	url := cfg.IframeAPIURL
	if url == "" {
		url = DefaultIframeAPIURL
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	settings := gobreaker.Settings{
		Name:        "widget-upstream",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Widget upstream circuit breaker state change")
		},
	}

	return &Client{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(refetchInterval), refetchBurst),
		breaker: gobreaker.NewCircuitBreaker[*Scripts](settings),
	}
}

// Scripts returns the cached script pair, fetching from upstream on the
// first call or after earlier failures. Fetch failures leave the cache
// empty; the next call retries subject to the limiter and breaker.
func (c *Client) Scripts(ctx context.Context) (*Scripts, error) {
	c.mu.Lock()
	if c.cached != nil {
		s := c.cached
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	if !c.limiter.Allow() {
		metrics.RecordWidgetFetch("throttled")
		return nil, ErrThrottled
	}

	s, err := c.breaker.Execute(func() (*Scripts, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		metrics.RecordWidgetFetch("error")
		return nil, err
	}
	metrics.RecordWidgetFetch("success")

	c.mu.Lock()
	c.cached = s
	c.mu.Unlock()

	logging.Info().
		Int("iframe_api_bytes", len(s.IframeAPI)).
		Int("widget_api_bytes", len(s.WidgetAPI)).
		Msg("Widget scripts cached")
	return s, nil
}

// fetch downloads the bootstrap, extracts the second-stage URL, rewrites
// the bootstrap to point at LocalWidgetAPIPath, and downloads the second
// stage from its original location.
func (c *Client) fetch(ctx context.Context) (*Scripts, error) {
	bootstrap, err := c.get(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("fetch iframe_api: %w", err)
	}

	match := scriptURLPattern.FindSubmatch(bootstrap)
	if match == nil {
		return nil, ErrScriptURLNotFound
	}

	// JS string literals escape the slashes; undo that to get a URL.
	origin := strings.ReplaceAll(string(match[1]), `\/`, "/")

	local := strings.ReplaceAll(LocalWidgetAPIPath, "/", `\/`)
	rewritten := scriptURLPattern.ReplaceAllLiteral(bootstrap, []byte("var scriptUrl = '"+local+"';"))

	widgetAPI, err := c.get(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("fetch www-widgetapi.js: %w", err)
	}

	return &Scripts{IframeAPI: rewritten, WidgetAPI: widgetAPI}, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
