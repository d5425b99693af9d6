// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"testing"

	"github.com/mgastelum/inventario/internal/config"
	"github.com/mgastelum/inventario/internal/logger"
)

// newTestDB opens an in-memory sqlite database with referential integrity
// on. The pool is capped at one connection because every :memory: connection
// is a separate database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: ":memory:"}, logger.Nop())
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}

// newProvisionedTestDB additionally runs the schema guardian so the full
// base schema is in place.
func newProvisionedTestDB(t *testing.T) *DB {
	t.Helper()

	db := newTestDB(t)
	if err := NewSchemaGuardian(db, logger.Nop()).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to provision schema: %v", err)
	}

	return db
}

// mustExec is a test shorthand for statements whose failure is a test bug.
func mustExec(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
