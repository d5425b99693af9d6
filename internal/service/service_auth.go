// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"
	"errors"
	"time"

	codec "github.com/mgastelum/inventario/internal/password"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/store"
	"github.com/mgastelum/inventario/models"
)

// authService is the concrete implementation of AuthService. It delegates
// the transactional read-verify-write sequence to the UserRepository and
// collapses every failure mode into the single ErrAuthFailed outcome so the
// caller cannot distinguish an unknown account from a wrong password.
type authService struct {
	userRepository store.UserRepository
	logger         *logger.Logger

	// now is stubbed in tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService wired to the given UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate verifies the supplied credentials and records the login.
//
// Empty name or password fails immediately without touching the store.
// Lookup is exact and case-sensitive. On success the account's last login
// timestamp is updated in the same transaction as the credential check and
// the caller receives the authenticated identity. The identity carries the
// role in canonical uppercase form regardless of how the store spells it.
//
// Returns ErrAuthFailed on every unsuccessful path that is attributable to
// the supplied credentials; storage failures are wrapped and propagated
// as-is so callers can tell an outage from a rejection.
func (a *authService) Authenticate(ctx context.Context, name, password string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if name == "" || password == "" {
		log.Debug().Str("func", "*authService.Authenticate").Msg("empty credentials rejected")
		return models.Identity{}, ErrAuthFailed
	}

	verify := func(storedCredential string) bool {
		return codec.Verify(password, storedCredential)
	}

	user, err := a.userRepository.AuthenticateUser(ctx, name, verify, a.now())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, store.ErrWrongCredential) {
			log.Info().Str("func", "*authService.Authenticate").Str("name", name).Msg("login rejected")
			return models.Identity{}, ErrAuthFailed
		}
		log.Err(err).Str("func", "*authService.Authenticate").Str("name", name).Msg("login failed on storage error")
		return models.Identity{}, err
	}

	role := user.Role.Canonical()

	log.Info().
		Str("func", "*authService.Authenticate").
		Int64("id", user.ID).
		Str("name", user.Name).
		Str("role", string(role)).
		Msg("login accepted")

	return models.Identity{ID: user.ID, Name: user.Name, Role: role}, nil
}
