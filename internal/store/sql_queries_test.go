// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgastelum/inventario/models"
)

func Test_buildListWarehousesQuery_NoFilter(t *testing.T) {
	audit := AuditColumns{CreatedAt: true, LastModifiedAt: true, LastModifiedBy: true}

	query, args, err := buildListWarehousesQuery(models.WarehouseFilter{}, audit)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from warehouses")
	require.Contains(t, q, "order by id")
	require.NotContains(t, q, "where")
	require.Empty(t, args)

	for _, column := range []string{"id", "name", "created_at", "last_modified_at", "last_modified_by"} {
		require.Contains(t, q, column)
	}
}

func Test_buildListWarehousesQuery_AllFilters(t *testing.T) {
	audit := AuditColumns{CreatedAt: true, LastModifiedAt: true, LastModifiedBy: true}

	name := "Cen"
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := buildListWarehousesQuery(models.WarehouseFilter{
		NameContains: &name,
		CreatedFrom:  &from,
		CreatedTo:    &to,
	}, audit)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "name like ?")
	require.Contains(t, q, "date(created_at) >= date(?)")
	require.Contains(t, q, "date(created_at) <= date(?)")

	require.Len(t, args, 3)
	assert.Equal(t, "%Cen%", args[0])
	assert.Equal(t, "2026-01-01", args[1])
	assert.Equal(t, "2026-03-31", args[2])
}

// Date filters must vanish when the schema has no created_at column; a
// constraint against a value the store does not hold matches nothing useful.
func Test_buildListWarehousesQuery_NoCreatedAtColumn(t *testing.T) {
	from := time.Now()

	query, args, err := buildListWarehousesQuery(models.WarehouseFilter{CreatedFrom: &from}, AuditColumns{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.NotContains(t, q, "where")
	require.Contains(t, q, "null as created_at")
	require.Empty(t, args)
}

func Test_buildListProductsQuery_FullSchema(t *testing.T) {
	caps := Capabilities{
		HasQuantity:     true,
		HasWarehouseRef: true,
		HasDepartment:   true,
		ProductAudit:    AuditColumns{CreatedAt: true, LastModifiedAt: true, LastModifiedBy: true},
	}

	name := "Torn"
	department := "Ferr"
	priceMin, priceMax := 1.0, 99.0
	quantityMin := int64(5)
	warehouse := "Central"

	query, args, err := buildListProductsQuery(models.ProductFilter{
		NameContains:       &name,
		DepartmentContains: &department,
		PriceMin:           &priceMin,
		PriceMax:           &priceMax,
		QuantityMin:        &quantityMin,
		Warehouse:          &warehouse,
	}, caps)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from products")
	require.Contains(t, q, "name like ?")
	require.Contains(t, q, "department like ?")
	require.Contains(t, q, "price >= ?")
	require.Contains(t, q, "price <= ?")
	require.Contains(t, q, "quantity >= ?")
	require.Contains(t, q, "warehouse = ?")
	require.Contains(t, q, "order by id")

	require.Len(t, args, 6)
	assert.Equal(t, "%Torn%", args[0])
	assert.Equal(t, "%Ferr%", args[1])
}

func Test_buildListProductsQuery_LegacySchemaSkipsFilters(t *testing.T) {
	// Bare products table: name and price only.
	caps := Capabilities{}

	department := "Ferr"
	quantityMin := int64(5)
	warehouse := "Central"

	query, args, err := buildListProductsQuery(models.ProductFilter{
		DepartmentContains: &department,
		QuantityMin:        &quantityMin,
		Warehouse:          &warehouse,
	}, caps)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.NotContains(t, q, "where")
	require.Empty(t, args)

	// Missing columns are replaced by typed literals so scans stay uniform.
	require.Contains(t, q, "0 as quantity")
	require.Contains(t, q, "'' as department")
	require.Contains(t, q, "null as warehouse")
}

func Test_buildGetProductQuery(t *testing.T) {
	caps := Capabilities{HasQuantity: true, HasDepartment: true}

	query, args, err := buildGetProductQuery(42, caps)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from products")
	require.Contains(t, q, "id = ?")
	require.Len(t, args, 1)
	assert.Equal(t, int64(42), args[0])
}
