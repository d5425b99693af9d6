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

// warehouseRepository is the sqlite-backed implementation of
// [WarehouseRepository]. Mutations run in one transaction each and stamp the
// audit trail through [stampAudit] before committing; the capability
// descriptor tells the stamper which audit columns the live schema carries.
type warehouseRepository struct {
	logger *logger.Logger
	db     *DB
	caps   Capabilities
}

// NewWarehouseRepository constructs a [WarehouseRepository] backed by the
// provided database connection, capability descriptor and logger.
func NewWarehouseRepository(db *DB, caps Capabilities, logger *logger.Logger) WarehouseRepository {
	logger.Debug().Msg("creating warehouse repository")
	return &warehouseRepository{
		db:     db,
		caps:   caps,
		logger: logger,
	}
}

// ListWarehouses returns warehouses matching the filter, ordered by id.
func (r *warehouseRepository) ListWarehouses(ctx context.Context, filter models.WarehouseFilter) ([]models.Warehouse, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListWarehousesQuery(filter, r.caps.WarehouseAudit)
	if err != nil {
		log.Err(err).Str("func", "*warehouseRepository.ListWarehouses").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*warehouseRepository.ListWarehouses").Msg("failed to execute warehouse listing")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	warehouses := make([]models.Warehouse, 0, 16)

	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			log.Err(err).Str("func", "*warehouseRepository.ListWarehouses").Msg("failed to scan warehouse row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		warehouses = append(warehouses, warehouse)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*warehouseRepository.ListWarehouses").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return warehouses, nil
}

// WarehouseNames returns every warehouse name in alphabetical order.
// Used for populating selection lists and validating product references.
func (r *warehouseRepository) WarehouseNames(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listWarehouseNames)
	if err != nil {
		log.Err(err).Str("func", "*warehouseRepository.WarehouseNames").Msg("failed to execute name listing")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return names, nil
}

// GetWarehouse returns the warehouse with the given id or [ErrNotFound].
func (r *warehouseRepository) GetWarehouse(ctx context.Context, id int64) (models.Warehouse, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(append([]string{"id", "name"}, auditSelectColumns(r.caps.WarehouseAudit)...)...).
		From("warehouses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.Warehouse{}, ErrNotFound
		}
		log.Err(err).Str("func", "*warehouseRepository.GetWarehouse").Msg("failed to scan warehouse row")
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return warehouse, nil
}

// CreateWarehouse inserts a warehouse and stamps the audit trail in the
// same transaction. created_at is written exactly once here and never again.
//
// A duplicate name surfaces as [ErrIntegrityViolation].
func (r *warehouseRepository) CreateWarehouse(ctx context.Context, name, actor string, at time.Time) (models.Warehouse, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*warehouseRepository.CreateWarehouse").Msg("failed to begin transaction")
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	insert := sq.Insert("warehouses").Columns("name").Values(name)
	if r.caps.WarehouseAudit.CreatedAt {
		insert = sq.Insert("warehouses").Columns("name", "created_at").Values(name, at)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return models.Warehouse{}, fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*warehouseRepository.CreateWarehouse").Msg("failed to insert warehouse")
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := stampAudit(ctx, tx, "warehouses", id, actor, at, r.caps.WarehouseAudit); err != nil {
		log.Err(err).Str("func", "*warehouseRepository.CreateWarehouse").Msg("failed to stamp audit trail")
		return models.Warehouse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*warehouseRepository.CreateWarehouse").Msg("failed to commit")
		return models.Warehouse{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	warehouse := models.Warehouse{ID: id, Name: name}
	if r.caps.WarehouseAudit.CreatedAt {
		warehouse.CreatedAt = at
	}
	if r.caps.WarehouseAudit.LastModifiedAt {
		warehouse.LastModifiedAt = &at
	}
	if r.caps.WarehouseAudit.LastModifiedBy {
		warehouse.LastModifiedBy = actor
	}

	return warehouse, nil
}

// RenameWarehouse updates the warehouse name and stamps the audit trail in
// the same transaction. An unknown id yields [ErrNotFound] and leaves the
// store unchanged.
func (r *warehouseRepository) RenameWarehouse(ctx context.Context, id int64, name, actor string, at time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*warehouseRepository.RenameWarehouse").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "UPDATE warehouses SET name = ? WHERE id = ?", name, id)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*warehouseRepository.RenameWarehouse").Msg("failed to update warehouse")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := stampAudit(ctx, tx, "warehouses", id, actor, at, r.caps.WarehouseAudit); err != nil {
		log.Err(err).Str("func", "*warehouseRepository.RenameWarehouse").Msg("failed to stamp audit trail")
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*warehouseRepository.RenameWarehouse").Msg("failed to commit")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteWarehouse removes the row unconditionally. No audit stamp: the row
// ceases to exist. An unknown id yields [ErrNotFound].
func (r *warehouseRepository) DeleteWarehouse(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteWarehouse, id)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*warehouseRepository.DeleteWarehouse").Msg("failed to delete warehouse")
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

func scanWarehouse(row rowScanner) (models.Warehouse, error) {
	var (
		warehouse  models.Warehouse
		createdAt  sql.NullTime
		modifiedAt sql.NullTime
		modifiedBy sql.NullString
	)

	if err := row.Scan(&warehouse.ID, &warehouse.Name, &createdAt, &modifiedAt, &modifiedBy); err != nil {
		return models.Warehouse{}, err
	}

	if createdAt.Valid {
		warehouse.CreatedAt = createdAt.Time
	}
	if modifiedAt.Valid {
		at := modifiedAt.Time
		warehouse.LastModifiedAt = &at
	}
	warehouse.LastModifiedBy = modifiedBy.String

	return warehouse, nil
}
