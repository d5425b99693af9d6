// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	codec "github.com/mgastelum/inventario/internal/password"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/mock"
	"github.com/mgastelum/inventario/internal/store"
	"github.com/mgastelum/inventario/models"
)

func newTestUserAdminService(t *testing.T, ctrl *gomock.Controller) (*userAdminService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewUserAdminService(mockRepo, logger.Nop()).(*userAdminService)
	return svc, mockRepo
}

func TestUserAdminService_ListUsers_AdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	for _, actor := range []models.Identity{productsActor, warehouseActor, visitorActor} {
		_, err := svc.ListUsers(ctx, actor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}

	want := []models.User{
		{ID: 1, Name: "ADMIN", Role: models.RoleAdmin},
		{ID: 4, Name: "VISITANTE", Role: models.RoleVisitor},
	}
	mockRepo.EXPECT().ListUsers(ctx).Return(want, nil)

	users, err := svc.ListUsers(ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, want, users)
}

func TestUserAdminService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		CreateUser(ctx, "CONTADOR", gomock.Any(), models.RoleVisitor).
		DoAndReturn(func(_ context.Context, name, packed string, role models.Role) (models.User, error) {
			// The stored credential must verify against the plaintext and
			// never contain it.
			assert.True(t, codec.Verify("contador7", packed))
			assert.NotContains(t, packed, "contador7")
			return models.User{ID: 5, Name: name, Role: role}, nil
		})

	// Role strings are normalized to canonical uppercase before storage.
	user, err := svc.CreateUser(ctx, adminActor, " CONTADOR ", "contador7", "visitor")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 5, Name: "CONTADOR", Role: models.RoleVisitor}, user)
}

func TestUserAdminService_CreateUser_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectation: invalid input must not reach the store.
	svc, _ := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, adminActor, "", "clave", "VISITOR")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateUser(ctx, adminActor, "CONTADOR", "", "VISITOR")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateUser(ctx, adminActor, "CONTADOR", "clave", "superuser")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	for _, actor := range []models.Identity{productsActor, warehouseActor, visitorActor} {
		_, err := svc.CreateUser(ctx, actor, "CONTADOR", "clave", "VISITOR")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestUserAdminService_CreateUser_DuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		CreateUser(ctx, "ADMIN", gomock.Any(), models.RoleAdmin).
		Return(models.User{}, store.ErrIntegrityViolation)

	_, err := svc.CreateUser(ctx, adminActor, "ADMIN", "otra", "ADMIN")
	assert.ErrorIs(t, err, store.ErrIntegrityViolation)
}

func TestUserAdminService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().DeleteUser(ctx, int64(5)).Return(nil)
	require.NoError(t, svc.DeleteUser(ctx, adminActor, 5))

	// Unknown ids are reported, never swallowed.
	mockRepo.EXPECT().DeleteUser(ctx, int64(99)).Return(store.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, adminActor, 99), store.ErrNotFound)

	for _, actor := range []models.Identity{productsActor, warehouseActor, visitorActor} {
		assert.ErrorIs(t, svc.DeleteUser(ctx, actor, 5), ErrPermissionDenied)
	}
}

func TestUserAdminService_ChangeUserRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	// Role strings are normalized to canonical uppercase before storage.
	mockRepo.EXPECT().UpdateUserRole(ctx, int64(4), models.RoleProducts).Return(nil)
	require.NoError(t, svc.ChangeUserRole(ctx, adminActor, 4, "products"))

	assert.ErrorIs(t, svc.ChangeUserRole(ctx, adminActor, 4, "superuser"), ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.ChangeUserRole(ctx, visitorActor, 4, "ADMIN"), ErrPermissionDenied)
}

func TestUserAdminService_ChangeUserRole_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().UpdateUserRole(ctx, int64(99), models.RoleVisitor).Return(store.ErrNotFound)

	err := svc.ChangeUserRole(ctx, adminActor, 99, "VISITOR")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserAdminService_ResetUserPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		UpdateUserCredential(ctx, int64(4), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, packed string) error {
			// The stored credential must verify against the new plaintext
			// and never contain it.
			assert.True(t, codec.Verify("nueva-clave", packed))
			assert.NotContains(t, packed, "nueva-clave")
			return nil
		})

	require.NoError(t, svc.ResetUserPassword(ctx, adminActor, 4, "nueva-clave"))

	assert.ErrorIs(t, svc.ResetUserPassword(ctx, adminActor, 4, ""), ErrInvalidDataProvided)
	assert.ErrorIs(t, svc.ResetUserPassword(ctx, visitorActor, 4, "x"), ErrPermissionDenied)
}
