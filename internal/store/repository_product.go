// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/models"
)

// productRepository is the sqlite-backed implementation of
// [ProductRepository]. Inserts and updates are shaped against the live
// schema: optional columns a legacy store does not carry are simply not
// written, and the audit trail is stamped inside the same transaction as
// the mutation itself.
type productRepository struct {
	logger *logger.Logger
	db     *DB
	caps   Capabilities
}

// NewProductRepository constructs a [ProductRepository] backed by the
// provided database connection, capability descriptor and logger.
func NewProductRepository(db *DB, caps Capabilities, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		caps:   caps,
		logger: logger,
	}
}

// ListProducts returns products matching the filter, ordered by id.
// Filters on columns the live schema lacks are ignored.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProductsQuery(filter, r.caps)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("failed to execute product listing")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, 32)

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Err(err).Str("func", "*productRepository.ListProducts").Msg("failed to scan product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

// GetProduct returns the product with the given id or [ErrNotFound].
func (r *productRepository) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetProductQuery(id, r.caps)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.Product{}, ErrNotFound
		}
		log.Err(err).Str("func", "*productRepository.GetProduct").Msg("failed to scan product row")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

// CreateProduct inserts a product and stamps the audit trail in the same
// transaction. Optional fields targeting columns the live schema lacks are
// dropped silently; created_at is written exactly once here.
//
// Broken warehouse references and other constraint failures surface as
// [ErrIntegrityViolation].
func (r *productRepository) CreateProduct(ctx context.Context, product models.Product, actor string, at time.Time) (models.Product, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("failed to begin transaction")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	columns := []string{"name", "price"}
	values := []any{product.Name, product.Price}

	if r.caps.HasQuantity {
		columns = append(columns, "quantity")
		values = append(values, product.Quantity)
	}
	if r.caps.HasDepartment {
		columns = append(columns, "department")
		values = append(values, product.Department)
	}
	if r.caps.HasWarehouseRef && product.Warehouse != nil {
		columns = append(columns, "warehouse")
		values = append(values, *product.Warehouse)
	}
	if r.caps.ProductAudit.CreatedAt {
		columns = append(columns, "created_at")
		values = append(values, at)
	}

	query, args, err := sq.Insert("products").Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return models.Product{}, fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("failed to insert product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := stampAudit(ctx, tx, "products", id, actor, at, r.caps.ProductAudit); err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("failed to stamp audit trail")
		return models.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("failed to commit")
		return models.Product{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	product.ID = id
	if r.caps.ProductAudit.CreatedAt {
		product.CreatedAt = at
	}
	if r.caps.ProductAudit.LastModifiedAt {
		product.LastModifiedAt = &at
	}
	if r.caps.ProductAudit.LastModifiedBy {
		product.LastModifiedBy = actor
	}

	return product, nil
}

// UpdateProduct overwrites the mutable fields of an existing product and
// stamps the audit trail in the same transaction. An unknown id yields
// [ErrNotFound] and leaves the store unchanged. created_at is never touched.
func (r *productRepository) UpdateProduct(ctx context.Context, product models.Product, actor string, at time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	update := sq.Update("products").
		Set("name", product.Name).
		Set("price", product.Price).
		Where(sq.Eq{"id": product.ID})

	if r.caps.HasQuantity {
		update = update.Set("quantity", product.Quantity)
	}
	if r.caps.HasDepartment {
		update = update.Set("department", product.Department)
	}
	if r.caps.HasWarehouseRef {
		var warehouse any
		if product.Warehouse != nil {
			warehouse = *product.Warehouse
		}
		update = update.Set("warehouse", warehouse)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("failed to update product")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := stampAudit(ctx, tx, "products", product.ID, actor, at, r.caps.ProductAudit); err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("failed to stamp audit trail")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("failed to commit")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteProduct removes the row unconditionally. An unknown id yields
// [ErrNotFound].
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteProduct, id)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Msg("failed to delete product")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		product    models.Product
		warehouse  sql.NullString
		createdAt  sql.NullTime
		modifiedAt sql.NullTime
		modifiedBy sql.NullString
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Quantity,
		&product.Department,
		&warehouse,
		&createdAt,
		&modifiedAt,
		&modifiedBy,
	)
	if err != nil {
		return models.Product{}, err
	}

	if warehouse.Valid {
		name := warehouse.String
		product.Warehouse = &name
	}
	if createdAt.Valid {
		product.CreatedAt = createdAt.Time
	}
	if modifiedAt.Valid {
		at := modifiedAt.Time
		product.LastModifiedAt = &at
	}
	product.LastModifiedBy = modifiedBy.String

	return product, nil
}
