// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package history

import (
	"testing"
	"time"

	"github.com/mkarlsen/rewind/internal/models"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func event(id string, offset time.Duration) models.WatchEvent {
	return models.WatchEvent{
		VideoID:   id,
		Title:     "title of " + id,
		Channel:   models.Channel{ID: "ch-" + id, Name: "channel of " + id},
		WatchedAt: base.Add(offset),
	}
}

func TestBuild_DeduplicatesByVideoID(t *testing.T) {
	t1 := base
	t2 := base.Add(time.Hour)
	t3 := base.Add(2 * time.Hour)

	table := Build([]models.WatchEvent{
		{VideoID: "abc12345678", Title: "repeat", WatchedAt: t1},
		{VideoID: "abc12345678", Title: "repeat", WatchedAt: t2},
		{VideoID: "xyz98765432", Title: "once", WatchedAt: t3},
	})

	if table.RawEvents != 3 {
		t.Errorf("RawEvents = %d, want 3", table.RawEvents)
	}
	if table.DistinctItems != 2 {
		t.Errorf("DistinctItems = %d, want 2", table.DistinctItems)
	}

	var repeat models.Video
	for _, v := range table.Items {
		if v.ID == "abc12345678" {
			repeat = v
		}
	}
	if repeat.WatchCount != 2 {
		t.Errorf("WatchCount = %d, want 2", repeat.WatchCount)
	}
	if !repeat.FirstWatched.Equal(t1) {
		t.Errorf("FirstWatched = %v, want %v", repeat.FirstWatched, t1)
	}
}

func TestBuild_EarliestWatchSurvivesOutOfOrderInput(t *testing.T) {
	// Later watch arrives first in the export.
	table := Build([]models.WatchEvent{
		event("vid00000001", 3*time.Hour),
		event("vid00000001", time.Hour),
		event("vid00000001", 2*time.Hour),
	})

	v := table.Items[0]
	if !v.FirstWatched.Equal(base.Add(time.Hour)) {
		t.Errorf("FirstWatched = %v, want %v", v.FirstWatched, base.Add(time.Hour))
	}
}

func TestBuild_TimelineInvariants(t *testing.T) {
	table := Build([]models.WatchEvent{
		event("aaa", 5*time.Hour),
		event("bbb", time.Hour),
		event("aaa", 2*time.Hour),
		event("aaa", 4*time.Hour),
		event("bbb", 3*time.Hour),
	})

	for _, v := range table.Items {
		if v.WatchCount != len(v.Timeline) {
			t.Errorf("item %s: WatchCount %d != len(Timeline) %d", v.ID, v.WatchCount, len(v.Timeline))
		}
		for i := 1; i < len(v.Timeline); i++ {
			if v.Timeline[i].Before(v.Timeline[i-1]) {
				t.Errorf("item %s: timeline not ascending at %d", v.ID, i)
			}
		}
		if !v.FirstWatched.Equal(v.Timeline[0]) {
			t.Errorf("item %s: FirstWatched %v != Timeline[0] %v", v.ID, v.FirstWatched, v.Timeline[0])
		}
	}

	if len(table.Timeline) != table.RawEvents {
		t.Errorf("global timeline length %d != raw events %d", len(table.Timeline), table.RawEvents)
	}
	for i := 1; i < len(table.Timeline); i++ {
		if table.Timeline[i].Before(table.Timeline[i-1]) {
			t.Errorf("global timeline not ascending at %d", i)
		}
	}
}

func TestBuild_ItemsSortedDescendingByFirstWatch(t *testing.T) {
	table := Build([]models.WatchEvent{
		event("old", time.Hour),
		event("new", 9*time.Hour),
		event("mid", 5*time.Hour),
	})

	for i := 1; i < len(table.Items); i++ {
		if table.Items[i].FirstWatched.After(table.Items[i-1].FirstWatched) {
			t.Errorf("items not descending by first watch at %d", i)
		}
	}
	if table.Items[0].ID != "new" || table.Items[2].ID != "old" {
		t.Errorf("unexpected item order: %s, %s, %s",
			table.Items[0].ID, table.Items[1].ID, table.Items[2].ID)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	table := Build(nil)
	if table.RawEvents != 0 || table.DistinctItems != 0 {
		t.Errorf("empty build: raw=%d distinct=%d, want 0/0", table.RawEvents, table.DistinctItems)
	}
	if len(table.Items) != 0 || len(table.Timeline) != 0 {
		t.Error("empty build should have no items and no timeline")
	}
}

func TestBuild_FirstMetadataWins(t *testing.T) {
	// Metadata comes from the record that first introduced the video.
	table := Build([]models.WatchEvent{
		{VideoID: "v", Title: "first title", Channel: models.Channel{ID: "c1", Name: "one"}, WatchedAt: base},
		{VideoID: "v", Title: "second title", Channel: models.Channel{ID: "c2", Name: "two"}, WatchedAt: base.Add(time.Hour)},
	})

	v := table.Items[0]
	if v.Title != "first title" {
		t.Errorf("Title = %q, want %q", v.Title, "first title")
	}
	if v.Channel.ID != "c1" {
		t.Errorf("Channel.ID = %q, want %q", v.Channel.ID, "c1")
	}
}
