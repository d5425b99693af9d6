// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AuditColumns records which of the audit columns exist on one entity table.
// The audit stamper consults it so that older schemas missing a column get
// whichever columns they do have stamped instead of a failing UPDATE.
type AuditColumns struct {
	CreatedAt      bool
	LastModifiedAt bool
	LastModifiedBy bool
}

// Capabilities is the descriptor of the optional parts of the opened schema,
// computed once at startup and passed explicitly into the repositories.
// CRUD operations adapt to it instead of re-querying PRAGMA state ad hoc.
type Capabilities struct {
	// HasQuantity, HasWarehouseRef and HasDepartment report whether the
	// products table carries the respective optional column.
	HasQuantity     bool
	HasWarehouseRef bool
	HasDepartment   bool

	// DepartmentRequired is true when the schema marks products.department
	// NOT NULL. The mandatory-field validation follows this flag, never a
	// hardcoded rule, because the schema can evolve.
	DepartmentRequired bool

	// ProductAudit and WarehouseAudit describe the audit columns available
	// on the two audited entity tables.
	ProductAudit   AuditColumns
	WarehouseAudit AuditColumns
}

// columnInfo is one row of "PRAGMA table_info".
type columnInfo struct {
	name    string
	colType string
	notNull bool
}

// InspectCapabilities reads the live schema and derives the [Capabilities]
// descriptor. Call it after [SchemaGuardian.EnsureSchema] so freshly
// provisioned columns are visible.
func InspectCapabilities(ctx context.Context, db *DB) (Capabilities, error) {
	var caps Capabilities

	productColumns, err := tableColumns(ctx, db, "products")
	if err != nil {
		return Capabilities{}, err
	}

	if department, ok := productColumns["department"]; ok {
		caps.HasDepartment = true
		caps.DepartmentRequired = department.notNull
	}
	_, caps.HasQuantity = productColumns["quantity"]
	_, caps.HasWarehouseRef = productColumns["warehouse"]
	caps.ProductAudit = auditColumnsOf(productColumns)

	warehouseColumns, err := tableColumns(ctx, db, "warehouses")
	if err != nil {
		return Capabilities{}, err
	}
	caps.WarehouseAudit = auditColumnsOf(warehouseColumns)

	return caps, nil
}

func auditColumnsOf(columns map[string]columnInfo) AuditColumns {
	audit := AuditColumns{}
	_, audit.CreatedAt = columns["created_at"]
	_, audit.LastModifiedAt = columns["last_modified_at"]
	_, audit.LastModifiedBy = columns["last_modified_by"]
	return audit
}

// tableColumns returns the column set of table keyed by column name.
// An absent table yields an empty map, not an error.
//
// PRAGMA does not accept bound parameters; table always comes from an
// internal constant, never from caller input.
func tableColumns(ctx context.Context, db *DB, table string) (map[string]columnInfo, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	columns := make(map[string]columnInfo)

	for rows.Next() {
		var (
			cid          int
			name         string
			colType      string
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &primaryKey); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		columns[name] = columnInfo{
			name:    name,
			colType: colType,
			notNull: notNull == 1,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return columns, nil
}
