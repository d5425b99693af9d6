// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/models"
)

// userRepository is the sqlite-backed implementation of [UserRepository].
// It handles account lookup, the transactional login sequence, and the
// admin-only role/credential mutations against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, operation-level tracing of database interactions. Credentials
// are never logged.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// AuthenticateUser implements the read-verify-write login sequence.
//
// The lookup matches the name exactly; "admin" does not find "ADMIN". When
// the verify callback accepts the stored credential, last_login_at is set
// to at inside the same transaction as the read, so a concurrent mutation
// cannot interleave between the two.
//
// Error handling:
//   - no row for the name → [ErrNoUserWasFound].
//   - verify rejects the stored credential → [ErrWrongCredential].
//   - any driver-level failure → wrapped low-level sentinel.
//
// The two failure sentinels let tests distinguish the cases; the service
// layer collapses both into one generic authentication failure so callers
// cannot probe which factor was wrong.
func (r *userRepository) AuthenticateUser(ctx context.Context, name string, verify func(storedCredential string) bool, at time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AuthenticateUser").Msg("failed to begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRowContext(ctx, findUserByName, name))
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.AuthenticateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if !verify(user.Credential) {
		return models.User{}, ErrWrongCredential
	}

	if _, err := tx.ExecContext(ctx, touchLastLogin, at, user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.AuthenticateUser").Msg("error updating last login")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.AuthenticateUser").Msg("error committing login transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	user.LastLoginAt = &at
	return user, nil
}

// FindUserByName retrieves the account whose name matches exactly.
//
// Error handling:
//   - empty result set → [ErrNoUserWasFound].
//   - scan failure → wrapped [ErrScanningRow].
func (r *userRepository) FindUserByName(ctx context.Context, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByName, name))
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByName").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// ListUsers returns every account ordered by id. The credential column is
// not selected; the packed value never leaves the store through this path.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)

	for rows.Next() {
		var (
			user      models.User
			role      sql.NullString
			lastLogin sql.NullTime
		)
		if err := rows.Scan(&user.ID, &user.Name, &role, &lastLogin); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		user.Role = models.Role(role.String)
		if lastLogin.Valid {
			at := lastLogin.Time
			user.LastLoginAt = &at
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUserRole reassigns the account's role. An id that matches no row
// yields [ErrNotFound], never a silent success.
func (r *userRepository) UpdateUserRole(ctx context.Context, id int64, role models.Role) error {
	return r.execOnUser(ctx, "*userRepository.UpdateUserRole", updateUserRole, role.String(), id)
}

// UpdateUserCredential replaces the stored packed credential. An id that
// matches no row yields [ErrNotFound].
func (r *userRepository) UpdateUserCredential(ctx context.Context, id int64, packedCredential string) error {
	return r.execOnUser(ctx, "*userRepository.UpdateUserCredential", updateUserCredential, packedCredential, id)
}

// CreateUser inserts a new account with a NULL last login. A duplicate name
// surfaces as [ErrIntegrityViolation]; the credential is stored packed and
// never logged.
func (r *userRepository) CreateUser(ctx context.Context, name, packedCredential string, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, insertUser, name, packedCredential, role.String())
	if err != nil {
		if isConstraintViolation(err) {
			return models.User{}, fmt.Errorf("%w: %w", ErrIntegrityViolation, err)
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.User{ID: id, Name: name, Role: role}, nil
}

// DeleteUser removes the account. An id that matches no row yields
// [ErrNotFound] and leaves the store unchanged.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.execOnUser(ctx, "*userRepository.DeleteUser", deleteUser, id)
}

// execOnUser runs a single-row users statement and converts the zero-rows
// case into [ErrNotFound].
func (r *userRepository) execOnUser(ctx context.Context, caller, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute user statement")
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

// rowScanner abstracts *sql.Row for single-row user scans inside and
// outside transactions.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user       models.User
		credential sql.NullString
		role       sql.NullString
		lastLogin  sql.NullTime
	)

	if err := row.Scan(&user.ID, &user.Name, &credential, &lastLogin, &role); err != nil {
		return models.User{}, err
	}

	user.Credential = credential.String
	user.Role = models.Role(role.String)
	if lastLogin.Valid {
		at := lastLogin.Time
		user.LastLoginAt = &at
	}

	return user, nil
}
