// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package models

import "time"

// Warehouse is a storage location products may reference by name.
// Warehouses carry a full audit trail: creation time is written once,
// the last-modified pair is stamped on every mutation.
type Warehouse struct {
	// ID is the warehouse identifier, assigned on insert.
	ID int64 `json:"id"`

	// Name is the display name of the warehouse. Unique per store.
	Name string `json:"name"`

	// CreatedAt is set exactly once at creation time and never overwritten.
	CreatedAt time.Time `json:"created_at"`

	// LastModifiedAt records when the row was last mutated.
	LastModifiedAt *time.Time `json:"last_modified_at,omitempty"`

	// LastModifiedBy records the name of the user who performed
	// the last mutation.
	LastModifiedBy string `json:"last_modified_by,omitempty"`
}

// TableName returns the name of the database table
// associated with the Warehouse model.
func (w Warehouse) TableName() string {
	return "warehouses"
}
