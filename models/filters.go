// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package models

import "time"

// WarehouseFilter narrows warehouse listings. A nil field means
// "no constraint", never "match empty".
type WarehouseFilter struct {
	// NameContains matches warehouses whose name contains the given
	// substring (LIKE %v%).
	NameContains *string

	// CreatedFrom keeps warehouses created on or after the given date.
	CreatedFrom *time.Time

	// CreatedTo keeps warehouses created on or before the given date.
	CreatedTo *time.Time
}

// ProductFilter narrows product listings. A nil field means
// "no constraint", never "match empty".
type ProductFilter struct {
	// NameContains matches products whose name contains the given substring.
	NameContains *string

	// DepartmentContains matches products whose department contains
	// the given substring.
	DepartmentContains *string

	// PriceMin and PriceMax bound the unit price (inclusive).
	PriceMin *float64
	PriceMax *float64

	// QuantityMin and QuantityMax bound the on-hand quantity (inclusive).
	QuantityMin *int64
	QuantityMax *int64

	// Warehouse matches products assigned to the warehouse
	// with exactly this name.
	Warehouse *string
}
