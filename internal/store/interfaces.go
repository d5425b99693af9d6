// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"time"

	"github.com/mgastelum/inventario/models"
)

// UserRepository is the persistence boundary for user accounts.
//
// Name matching is exact and case-sensitive in every method; the store never
// normalizes login keys.
type UserRepository interface {
	// AuthenticateUser runs the read-verify-write login sequence in one
	// transaction: look the user up by exact name, verify the stored
	// credential with the supplied callback, and record at as the last
	// login. Returns ErrNoUserWasFound or ErrWrongCredential on failure;
	// callers are expected to collapse both into one generic outcome.
	AuthenticateUser(ctx context.Context, name string, verify func(storedCredential string) bool, at time.Time) (models.User, error)

	// FindUserByName returns the account with exactly the given name,
	// or ErrNoUserWasFound.
	FindUserByName(ctx context.Context, name string) (models.User, error)

	// ListUsers returns every account ordered by id. The credential field
	// is never populated.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUserRole reassigns the account's role.
	// Returns ErrNotFound when id matches no row.
	UpdateUserRole(ctx context.Context, id int64, role models.Role) error

	// UpdateUserCredential replaces the stored packed credential.
	// Returns ErrNotFound when id matches no row.
	UpdateUserCredential(ctx context.Context, id int64, packedCredential string) error

	// CreateUser inserts a new account that has never logged in. A name
	// collision surfaces as ErrIntegrityViolation.
	CreateUser(ctx context.Context, name, packedCredential string, role models.Role) (models.User, error)

	// DeleteUser removes the account. Returns ErrNotFound when id matches
	// no row; the store is left unchanged in that case.
	DeleteUser(ctx context.Context, id int64) error
}

// WarehouseRepository is the persistence boundary for warehouses.
// Every mutation stamps the audit trail inside its own transaction.
type WarehouseRepository interface {
	ListWarehouses(ctx context.Context, filter models.WarehouseFilter) ([]models.Warehouse, error)
	WarehouseNames(ctx context.Context) ([]string, error)
	GetWarehouse(ctx context.Context, id int64) (models.Warehouse, error)
	CreateWarehouse(ctx context.Context, name, actor string, at time.Time) (models.Warehouse, error)
	RenameWarehouse(ctx context.Context, id int64, name, actor string, at time.Time) error
	DeleteWarehouse(ctx context.Context, id int64) error
}

// ProductRepository is the persistence boundary for products. The
// implementation adapts to the capability descriptor computed at startup,
// so optional columns absent from legacy schemas are neither read nor
// written.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product, actor string, at time.Time) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product, actor string, at time.Time) error
	DeleteProduct(ctx context.Context, id int64) error
}
