// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package config

// StructuredConfig is the top-level configuration container for the
// inventory tool. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log level and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the embedded database.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is the minimum zerolog level emitted ("debug", "info",
	// "warn", "error"). Empty means the logger default.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Shown on startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the embedded database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the embedded sqlite database.
type DB struct {
	// DSN is the sqlite database path or DSN
	// (e.g. "inventario.db", "file:inventario.db?cache=shared").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// DefaultDSN is used when no database path is configured anywhere. The
// tool keeps its data in a single file in the working directory.
const DefaultDSN = "inventario.db"

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Unset values fall back to built-in defaults. Returns a fully populated
// *StructuredConfig or an error if any source fails to load or the final
// config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
