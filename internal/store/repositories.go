// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"fmt"

	"github.com/mgastelum/inventario/internal/config"
	"github.com/mgastelum/inventario/internal/logger"
)

// Repositories bundles every repository backed by one database.
type Repositories struct {
	Capabilities Capabilities

	UserRepository      UserRepository
	WarehouseRepository WarehouseRepository
	ProductRepository   ProductRepository

	db *DB
}

// Open connects to the database, brings the schema up to date, seeds the
// bootstrap accounts and constructs the repositories against the inspected
// schema capabilities.
func Open(ctx context.Context, cfg config.DB, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := NewSchemaGuardian(db, log).EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	if err := NewSeeder(db, log).SeedBootstrapUsers(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding bootstrap users: %w", err)
	}

	caps, err := InspectCapabilities(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspecting schema capabilities: %w", err)
	}

	return &Repositories{
		Capabilities:        caps,
		UserRepository:      NewUserRepository(db, log),
		WarehouseRepository: NewWarehouseRepository(db, caps, log),
		ProductRepository:   NewProductRepository(db, caps, log),
		db:                  db,
	}, nil
}

// Close releases the underlying database connection.
func (r *Repositories) Close() error {
	return r.db.Close()
}
