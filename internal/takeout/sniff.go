// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package takeout

import (
	"bufio"
	"io"
	"strings"
)

// containsKeywords reports whether every marker substring appears in at
// least one line of r. It scans the stream once and returns as soon as all
// markers have been seen. This is a heuristic gate for schema
// classification, not a structural validation; a read error simply ends the
// search with whatever was found so far. Exports are sometimes written as
// one minified line, so lines are read without a length cap.
func containsKeywords(r io.Reader, keys []string) bool {
	found := make(map[string]bool, len(keys))

	reader := bufio.NewReaderSize(r, 64<<10)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			for _, key := range keys {
				if !found[key] && strings.Contains(line, key) {
					found[key] = true
				}
			}
			if len(found) == len(keys) {
				return true
			}
		}
		if err != nil {
			return false
		}
	}
}
