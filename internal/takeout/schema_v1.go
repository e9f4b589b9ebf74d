// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package takeout

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/mkarlsen/rewind/internal/models"
)

// format is one recognized export schema version. Sniffing and decoding are
// dispatched through this interface so new Takeout revisions can be added
// without restructuring the aggregation engine.
type format interface {
	// name identifies the schema version in logs and errors.
	name() string

	// markers returns the substrings that must all appear in the export
	// for it to be classified as this version. Markers are quoted so they
	// match JSON keys on the wire, not arbitrary payload text.
	markers() []string

	// decode deserializes the whole export into normalized watch events.
	// Any record violating the schema's type constraints fails the entire
	// batch; there is no per-record recovery.
	decode(r io.Reader) ([]models.WatchEvent, error)
}

// formats lists every recognized schema, probed in order.
var formats = []format{formatV1{}}

// formatV1 is the watch-history.json layout Takeout produces today: a JSON
// array of entries with header, title, titleUrl, subtitles, time and
// products fields.
type formatV1 struct{}

func (formatV1) name() string { return "v1" }

func (formatV1) markers() []string {
	return []string{
		`"header"`,
		`"title"`,
		`"titleUrl"`,
		`"subtitles"`,
		`"name"`,
		`"url"`,
		`"time"`,
		`"products"`,
	}
}

func (f formatV1) decode(r io.Reader) ([]models.WatchEvent, error) {
	var entries []entryV1
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode %s export: %w", f.name(), err)
	}

	events := make([]models.WatchEvent, 0, len(entries))
	for _, e := range entries {
		events = append(events, e.normalize())
	}
	return events, nil
}

// entryV1 is one raw record of the v1 export.
type entryV1 struct {
	Header    string       `json:"header"`
	Title     string       `json:"title"`
	TitleURL  string       `json:"titleUrl"`
	Subtitles []subtitleV1 `json:"subtitles"`
	Time      time.Time    `json:"time"`
	Products  []string     `json:"products"`
}

// subtitleV1 is a channel reference inside a v1 record. Takeout models this
// as a list; only the first element carries meaning.
type subtitleV1 struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// normalize converts a raw record into a watch event: video ID extracted
// from the title URL, "Watched " prefix stripped, channel taken from the
// first subtitle with the placeholder when the list is empty.
func (e entryV1) normalize() models.WatchEvent {
	channel := models.PlaceholderChannel()
	if len(e.Subtitles) > 0 {
		channel = models.Channel{
			ID:   extractChannelID(e.Subtitles[0].URL),
			Name: e.Subtitles[0].Name,
		}
	}

	return models.WatchEvent{
		VideoID:   extractVideoID(e.TitleURL),
		Title:     normalizeTitle(e.Title),
		Channel:   channel,
		WatchedAt: e.Time,
	}
}
