// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a lookup expected to match exactly
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrWrongCredential is returned by the login sequence when the supplied
	// plaintext does not verify against the stored packed credential.
	ErrWrongCredential = errors.New("credential verification failed")

	// ErrNotFound is returned when an update or delete targets a row id that
	// does not exist. The store is left unchanged.
	ErrNotFound = errors.New("record was not found")

	// ErrIntegrityViolation is returned when an insert or update breaks a
	// relational constraint (duplicate unique key, dangling warehouse
	// reference). The seeding path treats the duplicate-key case as benign;
	// interactive callers receive it as an error.
	ErrIntegrityViolation = errors.New("integrity constraint violated")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

// isNoRows reports whether err is the empty-result-set case of a
// single-row query.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is the sqlite duplicate-key case
// (UNIQUE or PRIMARY KEY constraint). The seeder relies on this to treat a
// concurrent duplicate insert as a harmless no-op.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// isConstraintViolation reports whether err is any sqlite integrity
// constraint failure (unique, not-null, foreign key, check).
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code == sqlite3.ErrConstraint
}
