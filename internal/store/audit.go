// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// execer is satisfied by both *sql.DB and *sql.Tx so the stamper can run
// inside whatever transaction the calling mutation opened.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// stampAudit records the (timestamp, actor) pair on one row of an audited
// entity table. Only the columns the capability descriptor reports as
// present are touched, so older schemas missing one of the two columns get
// the other stamped instead of a failing statement. created_at is never
// written here; it is set once at creation time.
//
// Every create and update path calls this inside its own transaction.
// Deletes do not (the row ceases to exist), reads do not.
func stampAudit(ctx context.Context, ex execer, table string, rowID int64, actor string, at time.Time, audit AuditColumns) error {
	setClauses := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if audit.LastModifiedAt {
		setClauses = append(setClauses, "last_modified_at = ?")
		args = append(args, at)
	}
	if audit.LastModifiedBy {
		setClauses = append(setClauses, "last_modified_by = ?")
		args = append(args, actor)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(setClauses, ", "))
	args = append(args, rowID)

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: stamping %s row %d: %w", ErrExecutingStatement, table, rowID, err)
	}

	return nil
}
