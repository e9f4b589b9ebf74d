// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package models

// PageInfo carries pagination metadata for one query result. Window is the
// bounded set of page numbers shown for UI navigation, not the data page.
type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	PrevPage    *int  `json:"prev_page,omitempty"`
	NextPage    *int  `json:"next_page,omitempty"`
	TotalPage   int   `json:"total_page"`
	Limit       int   `json:"limit"`
	Window      []int `json:"page_window"`
}

// NewPageInfo computes pagination metadata for the given current page,
// total page count and page size.
//
// The navigation window spans every page when there are five or fewer.
// Otherwise it is five pages centered on the current page (widened toward
// page five near the low end), shifted left when it would run past the last
// page, and floored at page one.
func NewPageInfo(current, totalPage, limit int) PageInfo {
	var prev, next *int
	if current > 1 {
		p := current - 1
		prev = &p
	}
	if current < totalPage {
		n := current + 1
		next = &n
	}

	start, end := 1, totalPage
	if totalPage > 5 {
		start = current - 2
		if start < 1 {
			start = 1
		}
		end = current + 2
		if end < 5 {
			end = 5
		}
		if end > totalPage {
			start -= end - totalPage
			if start < 1 {
				start = 1
			}
			end = totalPage
		}
	}

	var window []int
	for p := start; p <= end; p++ {
		window = append(window, p)
	}

	return PageInfo{
		CurrentPage: current,
		PrevPage:    prev,
		NextPage:    next,
		TotalPage:   totalPage,
		Limit:       limit,
		Window:      window,
	}
}
