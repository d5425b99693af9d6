// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package models

import "time"

// Product is an inventory item. It may optionally reference a warehouse by
// name; the reference is validated by the relational layer, not the core.
type Product struct {
	// ID is the product identifier, assigned on insert.
	ID int64 `json:"id"`

	// Name is the display name of the product. Mandatory.
	Name string `json:"name"`

	// Price is the unit price.
	Price float64 `json:"price"`

	// Quantity is the number of units on hand.
	Quantity int64 `json:"quantity"`

	// Department classifies the product. Whether it is mandatory depends on
	// the underlying schema (see store.Capabilities.DepartmentRequired).
	Department string `json:"department"`

	// Warehouse is the name of the referenced warehouse, or nil when the
	// product is not assigned to one.
	Warehouse *string `json:"warehouse,omitempty"`

	// CreatedAt is set exactly once at creation time and never overwritten.
	CreatedAt time.Time `json:"created_at"`

	// LastModifiedAt records when the row was last mutated.
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`

	// LastModifiedBy records the name of the user who performed
	// the last mutation.
	LastModifiedBy string `json:"last_modified_by,omitempty"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}
