// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"database/sql"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/migrations"
)

// DB wraps the raw database handle together with the application logger.
// All repositories and the schema guardian operate through this type.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded base-schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
