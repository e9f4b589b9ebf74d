// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package history

import (
	"sort"

	"github.com/mkarlsen/rewind/internal/models"
)

// Query answers one filter/sort/pagination request against the table. The
// table itself is never mutated: matching copies the item values and every
// reordering happens on that copy.
//
// Out-of-range pages are not an error; a page past the end snaps to the last
// full-or-partial page and a page below one is treated as the first page. A
// zero limit falls back to the default page size to keep the page arithmetic
// well defined.
func (t *Table) Query(f models.HistoryFilter) (models.PageInfo, []models.Video) {
	filtered := make([]models.Video, 0, len(t.Items))
	for _, v := range t.Items {
		if f.Matches(v) {
			filtered = append(filtered, v)
		}
	}

	switch f.Order {
	case models.OrderOldest:
		// Table order is already descending by earliest watch time.
		reverse(filtered)
	case models.OrderMostWatched:
		// Stable ascending sort followed by reversal. The reversal also
		// flips the relative order of equal-count items; callers depend
		// on this tie order.
		sort.SliceStable(filtered, byWatchCountAsc(filtered))
		reverse(filtered)
	case models.OrderLeastWatched:
		sort.SliceStable(filtered, byWatchCountAsc(filtered))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	totalPage := (total + limit - 1) / limit

	pageOffset := page * limit
	upper := pageOffset
	if upper > total {
		upper = total
	}

	lower := pageOffset - limit
	if pageOffset >= total {
		// Snap to the start of the last full-or-partial page.
		lower = total - total%limit
		if total > 0 && total%limit == 0 {
			lower = total - limit
		}
	}
	if lower < 0 {
		lower = 0
	}

	return models.NewPageInfo(page, totalPage, limit), filtered[lower:upper]
}

// byWatchCountAsc orders items by ascending watch count.
func byWatchCountAsc(items []models.Video) func(i, j int) bool {
	return func(i, j int) bool { return items[i].WatchCount < items[j].WatchCount }
}

// reverse flips a result set in place.
func reverse(items []models.Video) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
