// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user,
	// assigned by the database on insert and immutable afterwards.
	ID int64 `json:"id"`

	// Name is the unique login key. Matching is exact and case-sensitive
	// everywhere in the authentication path: "admin" and "ADMIN" are
	// two distinct accounts.
	Name string `json:"name"`

	// Credential is the packed "sha256$salt$digest" representation of the
	// user's password. This value is always a derived value, never plaintext,
	// and must never be logged or rendered.
	Credential string `json:"-"`

	// LastLoginAt is the timestamp of the most recent successful
	// authentication. Nil for accounts that have never logged in.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Role gates which operations the user may invoke.
	Role Role `json:"role"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity is the successful outcome of an authentication attempt:
// who logged in, and with which role. There is exactly one success shape;
// every failure collapses into a single generic failure.
type Identity struct {
	// ID is the authenticated user's identifier.
	ID int64 `json:"id"`

	// Name is the account name exactly as stored.
	Name string `json:"name"`

	// Role is the canonical uppercase role of the account.
	Role Role `json:"role"`
}
