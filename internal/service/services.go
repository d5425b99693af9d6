// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/store"
)

type Services struct {
	AuthService      AuthService
	WarehouseService WarehouseService
	ProductService   ProductService
	UserAdminService UserAdminService
}

func NewServices(repositories *store.Repositories, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(repositories.UserRepository, logger),
		WarehouseService: NewWarehouseService(repositories.WarehouseRepository, logger),
		ProductService:   NewProductService(repositories.ProductRepository, repositories.Capabilities, logger),
		UserAdminService: NewUserAdminService(repositories.UserRepository, logger),
	}
}
