// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/modresolve/config.cue (or XDG equivalent on
// Linux, ~/Library/Application Support/modresolve/config.cue on macOS,
// %APPDATA%\modresolve\config.cue on Windows). The package provides type-safe access to
// the resolver's root directory, candidate extension list, builtin-shim table, and empty
// shim path.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
