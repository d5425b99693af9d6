// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"
	"fmt"
	"strings"

	codec "github.com/mgastelum/inventario/internal/password"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/store"
	"github.com/mgastelum/inventario/models"
)

// userAdminService is the administration surface over user accounts:
// listing, account creation and deletion, role reassignment and password
// resets. Every operation is gated on the acting identity.
type userAdminService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserAdminService constructs a UserAdminService wired to the given
// UserRepository.
func NewUserAdminService(userRepository store.UserRepository, logger *logger.Logger) UserAdminService {
	return &userAdminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns every account without credentials. Admin only.
func (s *userAdminService) ListUsers(ctx context.Context, actor models.Identity) ([]models.User, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanManageUsers() {
		log.Info().Str("func", "*userAdminService.ListUsers").Str("actor", actor.Name).Msg("user listing denied")
		return nil, ErrPermissionDenied
	}

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// CreateUser adds a new account with the given role. The name is the exact
// case-sensitive login key and must be unique; the password is packed
// through the codec before it reaches the store. Admin only.
func (s *userAdminService) CreateUser(ctx context.Context, actor models.Identity, name, password, role string) (models.User, error) {
	log := logger.FromContext(ctx)

	if !actor.Role.CanManageUsers() {
		log.Info().Str("func", "*userAdminService.CreateUser").Str("actor", actor.Name).Msg("user creation denied")
		return models.User{}, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is empty", ErrInvalidDataProvided)
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password is empty", ErrInvalidDataProvided)
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	packed, err := codec.Pack(password)
	if err != nil {
		return models.User{}, fmt.Errorf("packing credential failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(ctx, name, packed, parsed)
	if err != nil {
		log.Err(err).Str("func", "*userAdminService.CreateUser").Str("name", name).Msg("user creation failed")
		return models.User{}, fmt.Errorf("user creation failed: %w", err)
	}

	log.Info().
		Str("func", "*userAdminService.CreateUser").
		Str("actor", actor.Name).
		Int64("id", user.ID).
		Str("name", user.Name).
		Str("role", string(parsed)).
		Msg("user created")

	return user, nil
}

// ChangeUserRole reassigns the account's role. The role string is validated
// against the closed set before any storage access. Admin only.
func (s *userAdminService) ChangeUserRole(ctx context.Context, actor models.Identity, userID int64, role string) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanManageUsers() {
		log.Info().Str("func", "*userAdminService.ChangeUserRole").Str("actor", actor.Name).Msg("role change denied")
		return ErrPermissionDenied
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.userRepository.UpdateUserRole(ctx, userID, parsed); err != nil {
		log.Err(err).Str("func", "*userAdminService.ChangeUserRole").Int64("id", userID).Msg("role change failed")
		return fmt.Errorf("role change failed: %w", err)
	}

	log.Info().
		Str("func", "*userAdminService.ChangeUserRole").
		Str("actor", actor.Name).
		Int64("id", userID).
		Str("role", string(parsed)).
		Msg("role changed")

	return nil
}

// ResetUserPassword replaces the account's stored credential with a freshly
// packed one. The plaintext never reaches any log. Admin only.
func (s *userAdminService) ResetUserPassword(ctx context.Context, actor models.Identity, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanManageUsers() {
		log.Info().Str("func", "*userAdminService.ResetUserPassword").Str("actor", actor.Name).Msg("password reset denied")
		return ErrPermissionDenied
	}

	if newPassword == "" {
		return fmt.Errorf("%w: password is empty", ErrInvalidDataProvided)
	}

	packed, err := codec.Pack(newPassword)
	if err != nil {
		return fmt.Errorf("packing credential failed: %w", err)
	}

	if err := s.userRepository.UpdateUserCredential(ctx, userID, packed); err != nil {
		log.Err(err).Str("func", "*userAdminService.ResetUserPassword").Int64("id", userID).Msg("password reset failed")
		return fmt.Errorf("password reset failed: %w", err)
	}

	log.Info().
		Str("func", "*userAdminService.ResetUserPassword").
		Str("actor", actor.Name).
		Int64("id", userID).
		Msg("password reset")

	return nil
}

// DeleteUser removes the account. An unknown id is reported as an error and
// the store stays unchanged. Admin only.
func (s *userAdminService) DeleteUser(ctx context.Context, actor models.Identity, userID int64) error {
	log := logger.FromContext(ctx)

	if !actor.Role.CanManageUsers() {
		log.Info().Str("func", "*userAdminService.DeleteUser").Str("actor", actor.Name).Msg("user deletion denied")
		return ErrPermissionDenied
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "*userAdminService.DeleteUser").Int64("id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	log.Info().
		Str("func", "*userAdminService.DeleteUser").
		Str("actor", actor.Name).
		Int64("id", userID).
		Msg("user deleted")

	return nil
}
