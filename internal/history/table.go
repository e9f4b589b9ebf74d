// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package history

import (
	"sort"
	"time"

	"github.com/mkarlsen/rewind/internal/models"
)

// Table is the aggregated watch history: per-video records plus the global
// timeline of every raw event. Items are sorted descending by earliest
// watch time; Timeline is sorted ascending.
type Table struct {
	RawEvents     int
	DistinctItems int
	Timeline      []time.Time
	Items         []models.Video
}

// Build folds raw watch events into a Table. For each event the raw count
// grows, its timestamp joins the global timeline, and the per-video record
// keyed by video ID is created or updated: earliest watch time is the
// minimum seen, the watch count increments, and the per-video timeline
// stays sorted ascending after every insertion.
//
// Output is deterministic regardless of input order, except for the
// relative order of items sharing an earliest watch time, which is not
// guaranteed stable.
func Build(events []models.WatchEvent) *Table {
	byID := make(map[string]*models.Video)
	timeline := make([]time.Time, 0, len(events))

	for _, ev := range events {
		timeline = append(timeline, ev.WatchedAt)

		v, seen := byID[ev.VideoID]
		if !seen {
			byID[ev.VideoID] = &models.Video{
				ID:           ev.VideoID,
				Title:        ev.Title,
				Channel:      ev.Channel,
				FirstWatched: ev.WatchedAt,
				WatchCount:   1,
				Timeline:     []time.Time{ev.WatchedAt},
			}
			continue
		}

		if ev.WatchedAt.Before(v.FirstWatched) {
			v.FirstWatched = ev.WatchedAt
		}
		v.WatchCount++
		v.Timeline = append(v.Timeline, ev.WatchedAt)
		sortTimes(v.Timeline)
	}

	items := make([]models.Video, 0, len(byID))
	for _, v := range byID {
		items = append(items, *v)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].FirstWatched.After(items[j].FirstWatched)
	})
	sortTimes(timeline)

	return &Table{
		RawEvents:     len(events),
		DistinctItems: len(items),
		Timeline:      timeline,
		Items:         items,
	}
}

// sortTimes sorts a timestamp slice ascending in place.
func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
