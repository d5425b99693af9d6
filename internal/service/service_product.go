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

// productService gates product operations by the acting user's role,
// validates input against the schema capabilities inspected at startup and
// delegates persistence to the ProductRepository.
type productService struct {
	productRepository store.ProductRepository
	caps              store.Capabilities
	logger            *logger.Logger

	now func() time.Time
}

// NewProductService constructs a ProductService wired to the given
// repository and capability descriptor.
func NewProductService(productRepository store.ProductRepository, caps store.Capabilities, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		caps:              caps,
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// ListProducts returns products matching the filter. Every authenticated
// role may read.
func (s *productService) ListProducts(ctx context.Context, actor models.Identity, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.productRepository.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product listing failed: %w", err)
	}

	return products, nil
}

// GetProduct returns one product by id. Every authenticated role may read.
func (s *productService) GetProduct(ctx context.Context, actor models.Identity, id int64) (models.Product, error) {
	product, err := s.productRepository.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("product lookup failed: %w", err)
	}

	return product, nil
}

// CreateProduct registers a new product on behalf of actor.
//
// Returns ErrPermissionDenied when the actor's role may not mutate
// products, ErrInvalidDataProvided when validation fails, and a wrapped
// store.ErrIntegrityViolation when the warehouse reference is broken.
func (s *productService) CreateProduct(ctx context.Context, actor models.Identity, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateProducts() {
		log.Info().Str("func", "*productService.CreateProduct").Str("actor", actor.Name).Msg("product creation denied")
		return models.Product{}, ErrPermissionDenied
	}

	if err := s.validateProduct(&product); err != nil {
		return models.Product{}, err
	}

	created, err := s.productRepository.CreateProduct(ctx, product, actor.Name, s.now())
	if err != nil {
		log.Err(err).Str("func", "*productService.CreateProduct").Str("name", product.Name).Msg("product creation failed")
		return models.Product{}, fmt.Errorf("product creation failed: %w", err)
	}

	return created, nil
}

// UpdateProduct overwrites the mutable fields of an existing product on
// behalf of actor.
//
// Returns ErrPermissionDenied for roles that may not mutate products,
// ErrInvalidDataProvided when validation fails, and the repository's
// ErrNotFound when the id matches no row.
func (s *productService) UpdateProduct(ctx context.Context, actor models.Identity, product models.Product) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateProducts() {
		log.Info().Str("func", "*productService.UpdateProduct").Str("actor", actor.Name).Msg("product update denied")
		return ErrPermissionDenied
	}

	if err := s.validateProduct(&product); err != nil {
		return err
	}

	if err := s.productRepository.UpdateProduct(ctx, product, actor.Name, s.now()); err != nil {
		log.Err(err).Str("func", "*productService.UpdateProduct").Int64("id", product.ID).Msg("product update failed")
		return fmt.Errorf("product update failed: %w", err)
	}

	return nil
}

// DeleteProduct removes the product on behalf of actor.
//
// Returns ErrPermissionDenied for roles that may not mutate products and
// the repository's ErrNotFound when id matches no row.
func (s *productService) DeleteProduct(ctx context.Context, actor models.Identity, id int64) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanMutateProducts() {
		log.Info().Str("func", "*productService.DeleteProduct").Str("actor", actor.Name).Msg("product deletion denied")
		return ErrPermissionDenied
	}

	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		log.Err(err).Str("func", "*productService.DeleteProduct").Int64("id", id).Msg("product deletion failed")
		return fmt.Errorf("product deletion failed: %w", err)
	}

	return nil
}

// validateProduct normalizes and checks caller input. The department rule
// follows the introspected schema: mandatory only when the live column is
// NOT NULL.
func (s *productService) validateProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	product.Department = strings.TrimSpace(product.Department)

	if product.Name == "" {
		return fmt.Errorf("%w: product name is empty", ErrInvalidDataProvided)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidDataProvided)
	}
	if product.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidDataProvided)
	}
	if s.caps.DepartmentRequired && product.Department == "" {
		return fmt.Errorf("%w: department is required", ErrInvalidDataProvided)
	}
	if product.Warehouse != nil && strings.TrimSpace(*product.Warehouse) == "" {
		product.Warehouse = nil
	}

	return nil
}
