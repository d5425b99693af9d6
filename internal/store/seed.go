// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"fmt"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/password"
	"github.com/mgastelum/inventario/models"
)

// bootstrapAccount is one fixed role-representative account created or
// refreshed on every startup.
type bootstrapAccount struct {
	name            string
	initialPassword string
	role            models.Role
}

// bootstrapAccounts is the deployment contract: one account per role, with
// a fixed initial password the operator is expected to rotate. Names and
// passwords are compatibility-frozen; do not edit them casually.
var bootstrapAccounts = []bootstrapAccount{
	{name: "ADMIN", initialPassword: "admin23", role: models.RoleAdmin},
	{name: "PRODUCTOS", initialPassword: "productos19", role: models.RoleProducts},
	{name: "ALMACENES", initialPassword: "almacenes11", role: models.RoleWarehouses},
	{name: "VISITANTE", initialPassword: "visitante1", role: models.RoleVisitor},
}

// Seeder upserts the bootstrap accounts. Safe to run on every startup and
// concurrently with another seeder: a duplicate-insert race is absorbed as
// a no-op instead of surfacing as a failure.
type Seeder struct {
	db     *DB
	logger *logger.Logger
}

// NewSeeder constructs a [Seeder] backed by the provided database
// connection and logger.
func NewSeeder(db *DB, logger *logger.Logger) *Seeder {
	logger.Debug().Msg("creating bootstrap user seeder")
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// SeedBootstrapUsers brings every bootstrap account to its seed definition.
//
// An existing account (matched by exact name) gets its credential and role
// overwritten, which recovers a forgotten bootstrap password or role drift;
// last_login_at is never touched. A missing account is inserted with a null
// last login. Each run packs fresh credentials, so stored values rotate
// their salt on every startup.
func (s *Seeder) SeedBootstrapUsers(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "Seeder.SeedBootstrapUsers").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, account := range bootstrapAccounts {
		packed, err := password.Pack(account.initialPassword)
		if err != nil {
			log.Err(err).
				Str("func", "Seeder.SeedBootstrapUsers").
				Str("name", account.name).
				Msg("failed to pack bootstrap credential")
			return fmt.Errorf("failed to pack bootstrap credential for %s: %w", account.name, err)
		}

		var id int64
		err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE name = ?", account.name).Scan(&id)

		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx,
				"UPDATE users SET credential = ?, role = ? WHERE id = ?",
				packed, account.role.String(), id,
			); err != nil {
				log.Err(err).
					Str("func", "Seeder.SeedBootstrapUsers").
					Str("name", account.name).
					Msg("failed to refresh bootstrap account")
				return fmt.Errorf("%w: refreshing bootstrap account %s: %w", ErrExecutingStatement, account.name, err)
			}

		case isNoRows(err):
			_, insertErr := tx.ExecContext(ctx,
				"INSERT INTO users (name, credential, last_login_at, role) VALUES (?, ?, NULL, ?)",
				account.name, packed, account.role.String(),
			)
			if insertErr != nil {
				if isUniqueViolation(insertErr) {
					// Another seeder won the race; its row is equivalent.
					log.Debug().
						Str("func", "Seeder.SeedBootstrapUsers").
						Str("name", account.name).
						Msg("bootstrap account inserted concurrently, skipping")
					continue
				}
				log.Err(insertErr).
					Str("func", "Seeder.SeedBootstrapUsers").
					Str("name", account.name).
					Msg("failed to insert bootstrap account")
				return fmt.Errorf("%w: inserting bootstrap account %s: %w", ErrExecutingStatement, account.name, insertErr)
			}

		default:
			log.Err(err).
				Str("func", "Seeder.SeedBootstrapUsers").
				Str("name", account.name).
				Msg("failed to look up bootstrap account")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "Seeder.SeedBootstrapUsers").Msg("failed to commit seed transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
