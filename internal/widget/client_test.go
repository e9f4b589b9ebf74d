// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package widget

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mkarlsen/rewind/internal/metrics"
)

// fakeUpstream serves a minimal iframe_api bootstrap whose scriptUrl
// points back at the same test server, plus the second-stage script.
func fakeUpstream(t *testing.T, widgetBody string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	escaped := strings.ReplaceAll(srv.URL+"/s/player/abc/www-widgetapi.js", "/", `\/`)
	mux.HandleFunc("/iframe_api", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("var scriptUrl = '" + escaped + "';(function(){})();"))
	})
	mux.HandleFunc("/s/player/abc/www-widgetapi.js", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(widgetBody))
	})
	return srv, &hits
}

func TestScriptsFetchAndRewrite(t *testing.T) {
	srv, _ := fakeUpstream(t, "widget-payload")
	c := NewClient(Config{IframeAPIURL: srv.URL + "/iframe_api"})

	s, err := c.Scripts(context.Background())
	if err != nil {
		t.Fatalf("Scripts() error: %v", err)
	}
	if string(s.WidgetAPI) != "widget-payload" {
		t.Errorf("WidgetAPI = %q, want widget-payload", s.WidgetAPI)
	}

	got := string(s.IframeAPI)
	want := `var scriptUrl = '\/www-widgetapi.js';`
	if !strings.Contains(got, want) {
		t.Errorf("rewritten bootstrap missing %q, got %q", want, got)
	}
	if strings.Contains(got, srv.URL) {
		t.Errorf("rewritten bootstrap still references upstream: %q", got)
	}
}

func TestScriptsCachesFirstResult(t *testing.T) {
	srv, hits := fakeUpstream(t, "payload")
	c := NewClient(Config{IframeAPIURL: srv.URL + "/iframe_api"})

	for i := 0; i < 3; i++ {
		if _, err := c.Scripts(context.Background()); err != nil {
			t.Fatalf("Scripts() call %d error: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("upstream bootstrap fetched %d times, want 1", got)
	}
}

func TestScriptsMissingScriptURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("console.log('no assignment here');"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{IframeAPIURL: srv.URL})
	if _, err := c.Scripts(context.Background()); !errors.Is(err, ErrScriptURLNotFound) {
		t.Errorf("Scripts() error = %v, want ErrScriptURLNotFound", err)
	}
}

func TestScriptsThrottlesRefetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{IframeAPIURL: srv.URL})
	ctx := context.Background()
	throttledBefore := testutil.ToFloat64(metrics.WidgetFetchTotal.WithLabelValues("throttled"))

	// Burn the limiter burst on failing fetches.
	sawThrottle := false
	for i := 0; i < refetchBurst+2; i++ {
		_, err := c.Scripts(ctx)
		if err == nil {
			t.Fatal("Scripts() succeeded against failing upstream")
		}
		if errors.Is(err, ErrThrottled) {
			sawThrottle = true
		}
	}
	if !sawThrottle {
		t.Error("expected ErrThrottled once the refetch burst was spent")
	}
	if got := testutil.ToFloat64(metrics.WidgetFetchTotal.WithLabelValues("throttled")) - throttledBefore; got < 1 {
		t.Errorf("throttled fetches recorded = %v, want at least 1", got)
	}
}
