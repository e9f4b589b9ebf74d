// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package models

import (
	"fmt"
	"strings"
	"time"
)

// Order selects the sort applied to a filtered result set.
type Order string

const (
	OrderLatest       Order = "latest"
	OrderOldest       Order = "oldest"
	OrderMostWatched  Order = "most_watched"
	OrderLeastWatched Order = "least_watched"
)

// DefaultOrder is applied when a request carries no order parameter.
const DefaultOrder = OrderLatest

// Default pagination parameters applied when a request omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// ParseOrder converts a query-string value into an Order.
// An empty value yields the default order.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "":
		return DefaultOrder, nil
	case OrderLatest, OrderOldest, OrderMostWatched, OrderLeastWatched:
		return Order(s), nil
	default:
		return "", fmt.Errorf("unknown order %q", s)
	}
}

// Label returns the human-readable name of the order, for UI rendering.
func (o Order) Label() string {
	switch o {
	case OrderOldest:
		return "Oldest"
	case OrderMostWatched:
		return "Most Watched"
	case OrderLeastWatched:
		return "Least Watched"
	default:
		return "Latest"
	}
}

// Orders lists all orders in display sequence, for UI rendering.
func Orders() []Order {
	return []Order{OrderLatest, OrderOldest, OrderMostWatched, OrderLeastWatched}
}

// HistoryFilter is a per-request filter/sort/pagination specification.
// Nil optional fields mean "no constraint"; a request with every optional
// field nil passes all items through unfiltered.
type HistoryFilter struct {
	// ID matches the video ID exactly.
	ID *string `json:"id,omitempty"`

	// Title matches as a case-insensitive substring of the video title.
	Title *string `json:"title,omitempty"`

	// ChannelName matches as a case-insensitive substring of the channel name.
	ChannelName *string `json:"channel_name,omitempty"`

	// From is an exclusive lower bound on the earliest watch time.
	From *time.Time `json:"from,omitempty"`

	// To is an exclusive upper bound on the earliest watch time.
	To *time.Time `json:"to,omitempty"`

	Order Order `json:"order" validate:"required"`
	Page  int   `json:"page" validate:"gte=1"`
	Limit int   `json:"limit" validate:"gte=0"`
}

// DefaultHistoryFilter returns the pass-through filter with default
// ordering and pagination.
func DefaultHistoryFilter() HistoryFilter {
	return HistoryFilter{
		Order: DefaultOrder,
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Unfiltered reports whether every optional predicate is absent, in which
// case filtering is skipped entirely.
func (f HistoryFilter) Unfiltered() bool {
	return f.ID == nil && f.Title == nil && f.ChannelName == nil &&
		f.From == nil && f.To == nil
}

// Matches reports whether the video passes every present predicate.
// Predicates are ANDed: exact ID equality, case-insensitive substring
// containment for title and channel name, and exclusive bounds on the
// earliest watch time.
func (f HistoryFilter) Matches(v Video) bool {
	if f.Unfiltered() {
		return true
	}
	if f.ID != nil && v.ID != *f.ID {
		return false
	}
	if f.Title != nil && !containsFold(v.Title, *f.Title) {
		return false
	}
	if f.ChannelName != nil && !containsFold(v.Channel.Name, *f.ChannelName) {
		return false
	}
	if f.From != nil && !v.FirstWatched.After(*f.From) {
		return false
	}
	if f.To != nil && !v.FirstWatched.Before(*f.To) {
		return false
	}
	return true
}

// containsFold reports case-insensitive substring containment.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
