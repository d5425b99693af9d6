// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mgastelum/inventario/models"
)

const (
	findUserByName = `SELECT id, name, credential, last_login_at, role
		FROM users
		WHERE name = ?;`

	touchLastLogin = `UPDATE users SET last_login_at = ? WHERE id = ?;`

	listUsers = `SELECT id, name, role, last_login_at
		FROM users
		ORDER BY id;`

	updateUserRole = `UPDATE users SET role = ? WHERE id = ?;`

	updateUserCredential = `UPDATE users SET credential = ? WHERE id = ?;`

	insertUser = `INSERT INTO users (name, credential, last_login_at, role)
		VALUES (?, ?, NULL, ?);`

	deleteUser = `DELETE FROM users WHERE id = ?;`

	listWarehouseNames = `SELECT name FROM warehouses ORDER BY name;`

	deleteWarehouse = `DELETE FROM warehouses WHERE id = ?;`

	deleteProduct = `DELETE FROM products WHERE id = ?;`
)

// buildListWarehousesQuery assembles the filtered warehouse listing.
// Absent filter fields add no WHERE clause at all: no constraint, not a
// match against the empty value. Date bounds compare on the date part only
// so a "created until" of today includes rows created today.
func buildListWarehousesQuery(filter models.WarehouseFilter, audit AuditColumns) (string, []any, error) {
	columns := append([]string{"id", "name"}, auditSelectColumns(audit)...)
	qb := sq.Select(columns...).From("warehouses")

	if filter.NameContains != nil {
		qb = qb.Where(sq.Like{"name": "%" + *filter.NameContains + "%"})
	}
	if filter.CreatedFrom != nil && audit.CreatedAt {
		qb = qb.Where(sq.Expr("date(created_at) >= date(?)", filter.CreatedFrom.Format("2006-01-02")))
	}
	if filter.CreatedTo != nil && audit.CreatedAt {
		qb = qb.Where(sq.Expr("date(created_at) <= date(?)", filter.CreatedTo.Format("2006-01-02")))
	}

	return qb.OrderBy("id").ToSql()
}

// buildListProductsQuery assembles the filtered product listing against
// whatever columns the live schema actually has. Optional columns missing
// from a legacy store are replaced by typed literals in the SELECT list, and
// filters that would touch a missing column are skipped (they cannot
// constrain a value the store does not hold).
func buildListProductsQuery(filter models.ProductFilter, caps Capabilities) (string, []any, error) {
	qb := sq.Select(productSelectColumns(caps)...).From("products")

	if filter.NameContains != nil {
		qb = qb.Where(sq.Like{"name": "%" + *filter.NameContains + "%"})
	}
	if filter.DepartmentContains != nil && caps.HasDepartment {
		qb = qb.Where(sq.Like{"department": "%" + *filter.DepartmentContains + "%"})
	}
	if filter.PriceMin != nil {
		qb = qb.Where(sq.GtOrEq{"price": *filter.PriceMin})
	}
	if filter.PriceMax != nil {
		qb = qb.Where(sq.LtOrEq{"price": *filter.PriceMax})
	}
	if filter.QuantityMin != nil && caps.HasQuantity {
		qb = qb.Where(sq.GtOrEq{"quantity": *filter.QuantityMin})
	}
	if filter.QuantityMax != nil && caps.HasQuantity {
		qb = qb.Where(sq.LtOrEq{"quantity": *filter.QuantityMax})
	}
	if filter.Warehouse != nil && caps.HasWarehouseRef {
		qb = qb.Where(sq.Eq{"warehouse": *filter.Warehouse})
	}

	return qb.OrderBy("id").ToSql()
}

// buildGetProductQuery assembles a single-product lookup with the same
// schema-aware SELECT list as the listing.
func buildGetProductQuery(id int64, caps Capabilities) (string, []any, error) {
	return sq.Select(productSelectColumns(caps)...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
}

// productSelectColumns renders the product SELECT list, substituting typed
// literals for the optional columns a legacy schema does not carry.
func productSelectColumns(caps Capabilities) []string {
	columns := []string{"id", "name", "price"}

	if caps.HasQuantity {
		columns = append(columns, "quantity")
	} else {
		columns = append(columns, "0 AS quantity")
	}
	if caps.HasDepartment {
		columns = append(columns, "department")
	} else {
		columns = append(columns, "'' AS department")
	}
	if caps.HasWarehouseRef {
		columns = append(columns, "warehouse")
	} else {
		columns = append(columns, "NULL AS warehouse")
	}

	return append(columns, auditSelectColumns(caps.ProductAudit)...)
}

// auditSelectColumns renders the audit part of a SELECT list, substituting
// NULL literals for columns a legacy schema does not carry.
func auditSelectColumns(audit AuditColumns) []string {
	columns := make([]string, 0, 3)

	if audit.CreatedAt {
		columns = append(columns, "created_at")
	} else {
		columns = append(columns, "NULL AS created_at")
	}
	if audit.LastModifiedAt {
		columns = append(columns, "last_modified_at")
	} else {
		columns = append(columns, "NULL AS last_modified_at")
	}
	if audit.LastModifiedBy {
		columns = append(columns, "last_modified_by")
	} else {
		columns = append(columns, "NULL AS last_modified_by")
	}

	return columns
}
