// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database path or DSN
//	-c/-config json file path with configs
//	-log-level minimum log level (debug, info, warn, error)
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var logLevel string

	flag.StringVar(&databaseDSN, "d", "", "Database path or DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
