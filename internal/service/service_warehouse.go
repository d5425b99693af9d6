// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/store"
	"github.com/mgastelum/inventario/models"
)

// warehouseService gates warehouse operations by the acting user's role and
// delegates persistence to the WarehouseRepository. A denied caller never
// causes a store round-trip.
type warehouseService struct {
	warehouseRepository store.WarehouseRepository
	logger              *logger.Logger

	now func() time.Time
}

// NewWarehouseService constructs a WarehouseService wired to the given
// repository.
func NewWarehouseService(warehouseRepository store.WarehouseRepository, logger *logger.Logger) WarehouseService {
	return &warehouseService{
		warehouseRepository: warehouseRepository,
		logger:              logger,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// ListWarehouses returns warehouses matching the filter. Every authenticated
// role may read.
func (s *warehouseService) ListWarehouses(ctx context.Context, actor models.Identity, filter models.WarehouseFilter) ([]models.Warehouse, error) {
	warehouses, err := s.warehouseRepository.ListWarehouses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("warehouse listing failed: %w", err)
	}

	return warehouses, nil
}

// WarehouseNames returns every warehouse name. Every authenticated role may
// read.
func (s *warehouseService) WarehouseNames(ctx context.Context, actor models.Identity) ([]string, error) {
	names, err := s.warehouseRepository.WarehouseNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("warehouse name listing failed: %w", err)
	}

	return names, nil
}

// CreateWarehouse registers a new warehouse on behalf of actor.
//
// Returns ErrPermissionDenied when the actor's role may not mutate
// warehouses, ErrInvalidDataProvided on an empty name, and a wrapped
// store.ErrIntegrityViolation when the name is already taken.
func (s *warehouseService) CreateWarehouse(ctx context.Context, actor models.Identity, name string) (models.Warehouse, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateWarehouses() {
		log.Info().Str("func", "*warehouseService.CreateWarehouse").Str("actor", actor.Name).Msg("warehouse creation denied")
		return models.Warehouse{}, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Warehouse{}, fmt.Errorf("%w: warehouse name is empty", ErrInvalidDataProvided)
	}

	warehouse, err := s.warehouseRepository.CreateWarehouse(ctx, name, actor.Name, s.now())
	if err != nil {
		log.Err(err).Str("func", "*warehouseService.CreateWarehouse").Str("name", name).Msg("warehouse creation failed")
		return models.Warehouse{}, fmt.Errorf("warehouse creation failed: %w", err)
	}

	return warehouse, nil
}

// RenameWarehouse changes the warehouse name on behalf of actor.
//
// Returns ErrPermissionDenied for roles that may not mutate warehouses,
// ErrInvalidDataProvided on an empty name, and the repository's ErrNotFound
// when id matches no row.
func (s *warehouseService) RenameWarehouse(ctx context.Context, actor models.Identity, id int64, name string) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateWarehouses() {
		log.Info().Str("func", "*warehouseService.RenameWarehouse").Str("actor", actor.Name).Msg("warehouse rename denied")
		return ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: warehouse name is empty", ErrInvalidDataProvided)
	}

	if err := s.warehouseRepository.RenameWarehouse(ctx, id, name, actor.Name, s.now()); err != nil {
		log.Err(err).Str("func", "*warehouseService.RenameWarehouse").Int64("id", id).Msg("warehouse rename failed")
		return fmt.Errorf("warehouse rename failed: %w", err)
	}

	return nil
}

// DeleteWarehouse removes the warehouse on behalf of actor.
//
// Returns ErrPermissionDenied for roles that may not mutate warehouses and
// the repository's ErrNotFound when id matches no row.
func (s *warehouseService) DeleteWarehouse(ctx context.Context, actor models.Identity, id int64) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateWarehouses() {
		log.Info().Str("func", "*warehouseService.DeleteWarehouse").Str("actor", actor.Name).Msg("warehouse deletion denied")
		return ErrPermissionDenied
	}

	if err := s.warehouseRepository.DeleteWarehouse(ctx, id); err != nil {
		log.Err(err).Str("func", "*warehouseService.DeleteWarehouse").Int64("id", id).Msg("warehouse deletion failed")
		return fmt.Errorf("warehouse deletion failed: %w", err)
	}

	return nil
}
