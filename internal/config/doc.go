// Rewind - YouTube Watch History Explorer
// Copyright 2026 M. Karlsen (mkarlsen)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkarlsen/rewind

// Package config loads layered configuration: built-in defaults, an
// optional YAML file, then environment variables, with later layers
// overriding earlier ones. Loading validates the result; a process
// never starts with a config it cannot serve.
package config
