// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package takeout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleExport = `[
  {
    "header": "YouTube",
    "title": "Watched Video A",
    "titleUrl": "https://www.youtube.com/watch?v=aaaaaaaaaaa",
    "subtitles": [{"name": "Creator", "url": "https://www.youtube.com/channel/UCcreator"}],
    "time": "2024-01-10T09:00:00Z",
    "products": ["YouTube"]
  },
  {
    "header": "YouTube",
    "title": "Watched Video A",
    "titleUrl": "https://www.youtube.com/watch?v=aaaaaaaaaaa",
    "subtitles": [{"name": "Creator", "url": "https://www.youtube.com/channel/UCcreator"}],
    "time": "2024-01-20T21:00:00Z",
    "products": ["YouTube"]
  },
  {
    "header": "YouTube",
    "title": "Watched Video B",
    "titleUrl": "https://www.youtube.com/watch?v=bbbbbbbbbbb",
    "subtitles": [{"name": "Other", "url": "https://www.youtube.com/channel/UCother"}],
    "time": "2024-01-15T12:00:00Z",
    "products": ["YouTube"]
  }
]`

func TestLoadAggregatesExport(t *testing.T) {
	path := writeExport(t, "watch-history.json", sampleExport)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if table.RawEvents != 3 {
		t.Errorf("RawEvents = %d, want 3", table.RawEvents)
	}
	if table.DistinctItems != 2 {
		t.Errorf("DistinctItems = %d, want 2", table.DistinctItems)
	}

	var a, b int = -1, -1
	for i, v := range table.Items {
		switch v.ID {
		case "aaaaaaaaaaa":
			a = i
		case "bbbbbbbbbbb":
			b = i
		}
	}
	if a == -1 || b == -1 {
		t.Fatalf("missing aggregated items, got %+v", table.Items)
	}
	if got := table.Items[a].WatchCount; got != 2 {
		t.Errorf("video A WatchCount = %d, want 2", got)
	}
	// B's first watch (Jan 15) is later than A's (Jan 10), so B leads
	// the newest-first table order.
	if b > a {
		t.Errorf("table order = %v before %v, want newest first watch leading", a, b)
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	path := writeExport(t, "watch-history.txt", sampleExport)
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFile", err)
	}
}

func TestLoadRejectsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export.json")
	if err := os.Mkdir(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFile", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() on missing file succeeded, want error")
	}
}

func TestLoadUnrecognizedSchema(t *testing.T) {
	path := writeExport(t, "other.json", `[{"song": "x", "artist": "y"}]`)
	if _, err := Load(path); !errors.Is(err, ErrUnrecognizedSchema) {
		t.Errorf("Load() error = %v, want ErrUnrecognizedSchema", err)
	}
}

func TestLoadCaseInsensitiveExtension(t *testing.T) {
	path := writeExport(t, "watch-history.JSON", sampleExport)
	if _, err := Load(path); err != nil {
		t.Errorf("Load() with .JSON extension error = %v", err)
	}
}

func TestLoadMalformedJSONFailsWholeFile(t *testing.T) {
	malformed := `[{"header": "YouTube", "title": "Watched X", "titleUrl": "https://youtu.be/aaaaaaaaaaa", "subtitles": [{"name": "C", "url": "https://www.youtube.com/channel/UCc"}], "time": "not-a-time", "products": ["YouTube"]}]`
	path := writeExport(t, "bad.json", malformed)
	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded on malformed timestamp, want error")
	}
}
