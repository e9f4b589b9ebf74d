// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package supervisor builds the suture supervision tree the process
// runs under. The HTTP server restarts on transient failure; fatal
// errors like a failed bind terminate the whole tree so the process
// exits instead of crash-looping.
package supervisor
