// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import "errors"

var (
	// ErrAuthFailed is the single failure every unsuccessful login collapses
	// into. Unknown name, wrong password and malformed stored credential are
	// indistinguishable to the caller.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrPermissionDenied is returned when the acting user's role does not
	// allow the requested operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidDataProvided is returned when caller input fails validation
	// before any storage access.
	ErrInvalidDataProvided = errors.New("invalid data provided")
)
