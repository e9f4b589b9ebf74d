// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package takeout

import (
	"regexp"
	"strings"
)

// watchedPrefix is prepended by Takeout to every watch-history title.
const watchedPrefix = "Watched "

var (
	// videoIDPattern extracts the 11-character video ID from watch,
	// channel and short-link URLs.
	videoIDPattern = regexp.MustCompile(`(?:https?://(?:www\.|music\.)?youtube\.com/(?:channel|c|user)/|https?://(?:www\.|music\.)?youtube\.com/watch\?v=|https?://youtu\.be/)([a-zA-Z0-9_-]{11})`)

	// channelIDPattern extracts the path segment following /channel/, /c/
	// or /user/ from a channel URL.
	channelIDPattern = regexp.MustCompile(`(?:https?://(?:www\.)?youtube\.com/(?:channel|c|user)/)([a-zA-Z0-9_-]+)`)
)

// extractVideoID pulls a YouTube video ID out of a URL. When no known
// pattern matches, the raw string is used verbatim as the identifier.
func extractVideoID(raw string) string {
	if m := videoIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// extractChannelID pulls a YouTube channel ID out of a URL, falling back
// to the raw string when unmatched.
func extractChannelID(raw string) string {
	if m := channelIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// normalizeTitle strips the Takeout "Watched " prefix when present.
func normalizeTitle(raw string) string {
	return strings.TrimPrefix(raw, watchedPrefix)
}
