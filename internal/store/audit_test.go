// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func TestStampAudit_WritesBothColumns(t *testing.T) {
	db := newProvisionedTestDB(t)
	ctx := context.Background()

	mustExec(t, db, "INSERT INTO warehouses (name) VALUES ('Central')")

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	audit := AuditColumns{LastModifiedAt: true, LastModifiedBy: true}

	if err := stampAudit(ctx, db, "warehouses", 1, "ADMIN", at, audit); err != nil {
		t.Fatalf("stampAudit: %v", err)
	}

	var (
		modifiedAt time.Time
		modifiedBy string
	)
	err := db.QueryRowContext(ctx,
		"SELECT last_modified_at, last_modified_by FROM warehouses WHERE id = 1").
		Scan(&modifiedAt, &modifiedBy)
	if err != nil {
		t.Fatalf("reading stamp: %v", err)
	}
	if !modifiedAt.Equal(at) || modifiedBy != "ADMIN" {
		t.Errorf("unexpected stamp: %v by %q", modifiedAt, modifiedBy)
	}
}

// A schema missing one audit column gets the other stamped; missing both
// makes the stamper a no-op instead of a failing statement.
func TestStampAudit_PartialColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mustExec(t, db, `CREATE TABLE warehouses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		last_modified_by TEXT
	)`)
	mustExec(t, db, "INSERT INTO warehouses (name) VALUES ('Central')")

	at := time.Now().UTC()

	if err := stampAudit(ctx, db, "warehouses", 1, "ADMIN", at, AuditColumns{LastModifiedBy: true}); err != nil {
		t.Fatalf("stampAudit with partial columns: %v", err)
	}

	var modifiedBy sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT last_modified_by FROM warehouses WHERE id = 1").Scan(&modifiedBy); err != nil {
		t.Fatalf("reading stamp: %v", err)
	}
	if modifiedBy.String != "ADMIN" {
		t.Errorf("expected actor stamp, got %q", modifiedBy.String)
	}

	if err := stampAudit(ctx, db, "warehouses", 1, "ADMIN", at, AuditColumns{}); err != nil {
		t.Fatalf("stampAudit with no columns must be a no-op: %v", err)
	}
}

// The stamper leaves created_at alone; only creation writes it.
func TestStampAudit_NeverTouchesCreatedAt(t *testing.T) {
	db := newProvisionedTestDB(t)
	ctx := context.Background()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mustExec(t, db, "INSERT INTO warehouses (name, created_at) VALUES ('Central', ?)", created)

	audit := AuditColumns{CreatedAt: true, LastModifiedAt: true, LastModifiedBy: true}
	if err := stampAudit(ctx, db, "warehouses", 1, "ADMIN", time.Now().UTC(), audit); err != nil {
		t.Fatalf("stampAudit: %v", err)
	}

	var createdAt time.Time
	if err := db.QueryRowContext(ctx, "SELECT created_at FROM warehouses WHERE id = 1").Scan(&createdAt); err != nil {
		t.Fatalf("reading created_at: %v", err)
	}
	if !createdAt.Equal(created) {
		t.Errorf("created_at modified by stamp: %v", createdAt)
	}
}
