// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"fmt"

	"github.com/mgastelum/inventario/internal/logger"
)

// createUsersTable mirrors the users migration so the guardian can provision
// the table even when the migration runner itself is unavailable (e.g. a
// legacy store with a corrupted goose version table).
const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		credential TEXT NOT NULL,
		last_login_at TIMESTAMP,
		role TEXT NOT NULL
	);`

// auditedTables are the entity tables that carry the three-column audit
// trail. The guardian provisions missing audit columns on whichever of these
// already exist; absent tables are skipped, never created here.
var auditedTables = []string{"warehouses", "products"}

// SchemaGuardian idempotently brings an opened store up to the schema the
// application expects. Evolution is additive only: columns are added, never
// dropped or renamed, and pre-existing values are never overwritten.
type SchemaGuardian struct {
	db     *DB
	logger *logger.Logger
}

// NewSchemaGuardian constructs a [SchemaGuardian] bound to the given
// database connection and logger.
func NewSchemaGuardian(db *DB, logger *logger.Logger) *SchemaGuardian {
	logger.Debug().Msg("creating schema guardian")
	return &SchemaGuardian{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema is safe to call on every process start.
//
// It applies the embedded base migrations, guarantees the users table and
// its columns exist, and provisions missing audit columns on every audited
// entity table that is already present. When created_at is added to a table
// the existing rows are backfilled with the current time; rows that already
// carry a value keep it.
//
// Provisioning is best-effort per table: a failure on one audited table is
// logged and does not abort processing of the others. Only a users-table
// failure is returned, because authentication cannot work without it.
func (g *SchemaGuardian) EnsureSchema(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := g.db.Migrate(); err != nil {
		// The guardian still provisions the auth-critical pieces below.
		log.Warn().Err(err).Str("func", "SchemaGuardian.EnsureSchema").Msg("base migrations failed")
	}

	if err := g.ensureUsersTable(ctx); err != nil {
		log.Err(err).Str("func", "SchemaGuardian.EnsureSchema").Msg("failed to ensure users table")
		return fmt.Errorf("failed to ensure users table: %w", err)
	}

	for _, table := range auditedTables {
		if err := g.ensureAuditColumns(ctx, table); err != nil {
			log.Warn().Err(err).
				Str("func", "SchemaGuardian.EnsureSchema").
				Str("table", table).
				Msg("failed to provision audit columns, continuing")
		}
	}

	return nil
}

// ensureUsersTable creates the users table when absent and adds any column a
// legacy schema may be missing. Added columns are plain TEXT/TIMESTAMP: the
// UNIQUE constraint on name cannot be retrofitted via ALTER TABLE, so legacy
// tables keep whatever constraints they were created with.
func (g *SchemaGuardian) ensureUsersTable(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	userColumns := []struct {
		name   string
		colDef string
	}{
		{name: "name", colDef: "name TEXT"},
		{name: "credential", colDef: "credential TEXT"},
		{name: "last_login_at", colDef: "last_login_at TIMESTAMP"},
		{name: "role", colDef: "role TEXT"},
	}

	for _, col := range userColumns {
		if err := g.ensureColumn(ctx, "users", col.name, col.colDef, ""); err != nil {
			return err
		}
	}

	return nil
}

// ensureAuditColumns provisions the audit trail on one entity table.
// A table that does not exist is skipped without error.
func (g *SchemaGuardian) ensureAuditColumns(ctx context.Context, table string) error {
	exists, err := g.tableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		g.logger.Debug().
			Str("func", "SchemaGuardian.ensureAuditColumns").
			Str("table", table).
			Msg("table absent, skipping audit provisioning")
		return nil
	}

	// Backfill only fires when the column was just added, so values written
	// by earlier runs are never overwritten.
	backfill := fmt.Sprintf(
		"UPDATE %s SET created_at = COALESCE(created_at, datetime('now'))", table,
	)
	if err := g.ensureColumn(ctx, table, "created_at", "created_at TIMESTAMP", backfill); err != nil {
		return err
	}

	if err := g.ensureColumn(ctx, table, "last_modified_at", "last_modified_at TIMESTAMP", ""); err != nil {
		return err
	}

	return g.ensureColumn(ctx, table, "last_modified_by", "last_modified_by TEXT", "")
}

// ensureColumn adds a column when it is missing and, if backfillSQL is
// non-empty, runs it once to initialise rows that predate the column.
func (g *SchemaGuardian) ensureColumn(ctx context.Context, table, column, colDef, backfillSQL string) error {
	hasColumn, err := g.tableHasColumn(ctx, table, column)
	if err != nil {
		return err
	}
	if hasColumn {
		return nil
	}

	alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, colDef)
	if _, err := g.db.ExecContext(ctx, alter); err != nil {
		return fmt.Errorf("%w: adding column %s.%s: %w", ErrExecutingStatement, table, column, err)
	}

	if backfillSQL != "" {
		if _, err := g.db.ExecContext(ctx, backfillSQL); err != nil {
			return fmt.Errorf("%w: backfilling column %s.%s: %w", ErrExecutingStatement, table, column, err)
		}
	}

	g.logger.Info().
		Str("func", "SchemaGuardian.ensureColumn").
		Str("table", table).
		Str("column", column).
		Msg("added missing column")

	return nil
}

func (g *SchemaGuardian) tableExists(ctx context.Context, table string) (bool, error) {
	row := g.db.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type='table' AND lower(name)=lower(?)", table)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

func (g *SchemaGuardian) tableHasColumn(ctx context.Context, table, column string) (bool, error) {
	columns, err := tableColumns(ctx, g.db, table)
	if err != nil {
		return false, err
	}

	_, ok := columns[column]
	return ok, nil
}
