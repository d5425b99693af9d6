// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

// Package migrations holds the embedded goose SQL migrations that create the
// base inventory schema (users, warehouses, products).
//
// Every statement is additive: tables are created with IF NOT EXISTS so the
// migrations are safe to apply on top of a store produced by an older build.
// Audit columns missing from stores that predate them are provisioned
// separately by the store package's schema guardian.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
