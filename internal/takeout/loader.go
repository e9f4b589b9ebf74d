// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

package takeout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkarlsen/rewind/internal/history"
	"github.com/mkarlsen/rewind/internal/logging"
)

var (
	// ErrUnsupportedFile is returned when the path does not point at a
	// regular .json file.
	ErrUnsupportedFile = errors.New("unsupported file format: expected a .json watch-history export")

	// ErrUnrecognizedSchema is returned when the file matches none of the
	// recognized export schemas.
	ErrUnrecognizedSchema = errors.New("unrecognized JSON structure: the export does not match any known schema")
)

// Load reads the watch-history export at path, classifies its schema,
// decodes it and aggregates the events into a queryable table. Every error
// is fatal to ingestion: there is no partial table.
func Load(path string) (*history.Table, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing export file")
		}
	}()

	for _, fm := range formats {
		matched := containsKeywords(f, fm.markers())
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind export %s: %w", path, err)
		}
		if !matched {
			continue
		}

		logging.Debug().Str("schema", fm.name()).Msg("Matched export schema")

		events, err := fm.decode(f)
		if err != nil {
			return nil, err
		}

		table := history.Build(events)
		logging.Info().
			Int("raw_events", table.RawEvents).
			Int("distinct_items", table.DistinctItems).
			Msg("Watch history aggregated")
		return table, nil
	}

	return nil, ErrUnrecognizedSchema
}

// checkFile verifies the path points at a regular file with the .json
// extension before any bytes are read.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat export %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return ErrUnsupportedFile
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return ErrUnsupportedFile
	}
	return nil
}
