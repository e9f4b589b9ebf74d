// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package models

import "time"

// ChannelPlaceholder is the value used for both channel fields when the
// export carries no channel information for an event.
const ChannelPlaceholder = "-"

// Channel identifies a YouTube channel. Identity is ID; Name is display-only.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlaceholderChannel returns the channel used when extraction fails.
func PlaceholderChannel() Channel {
	return Channel{ID: ChannelPlaceholder, Name: ChannelPlaceholder}
}

// WatchEvent is one normalized entry of the source export: a single watch
// instance, possibly one of many for the same video.
type WatchEvent struct {
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title"`
	Channel   Channel   `json:"channel"`
	WatchedAt time.Time `json:"watched_at"`
}

// Video is the deduplicated, aggregated record for one distinct video.
//
// Invariants maintained by the aggregation engine:
//   - WatchCount == len(Timeline)
//   - FirstWatched == Timeline[0] (Timeline is sorted ascending)
type Video struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Channel      Channel     `json:"channel"`
	FirstWatched time.Time   `json:"earliest_watched_at"`
	WatchCount   int         `json:"watch_count"`
	Timeline     []time.Time `json:"watch_timeline"`
}

// Equal reports whether two videos denote the same item. Identity is the
// video ID alone; other fields do not participate.
func (v Video) Equal(other Video) bool {
	return v.ID == other.ID
}
