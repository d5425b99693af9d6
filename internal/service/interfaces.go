// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"

	"github.com/mgastelum/inventario/models"
)

type AuthService interface {
	Authenticate(ctx context.Context, name, password string) (models.Identity, error)
}

type WarehouseService interface {
	ListWarehouses(ctx context.Context, actor models.Identity, filter models.WarehouseFilter) ([]models.Warehouse, error)
	WarehouseNames(ctx context.Context, actor models.Identity) ([]string, error)
	CreateWarehouse(ctx context.Context, actor models.Identity, name string) (models.Warehouse, error)
	RenameWarehouse(ctx context.Context, actor models.Identity, id int64, name string) error
	DeleteWarehouse(ctx context.Context, actor models.Identity, id int64) error
}

type ProductService interface {
	ListProducts(ctx context.Context, actor models.Identity, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, actor models.Identity, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, actor models.Identity, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, actor models.Identity, product models.Product) error
	DeleteProduct(ctx context.Context, actor models.Identity, id int64) error
}

type UserAdminService interface {
	ListUsers(ctx context.Context, actor models.Identity) ([]models.User, error)
	CreateUser(ctx context.Context, actor models.Identity, name, password, role string) (models.User, error)
	ChangeUserRole(ctx context.Context, actor models.Identity, userID int64, role string) error
	ResetUserPassword(ctx context.Context, actor models.Identity, userID int64, newPassword string) error
	DeleteUser(ctx context.Context, actor models.Identity, userID int64) error
}
