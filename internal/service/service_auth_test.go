// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	codec "github.com/mgastelum/inventario/internal/password"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/mock"
	"github.com/mgastelum/inventario/internal/store"
	"github.com/mgastelum/inventario/models"
)

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, logger.Nop()).(*authService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc, mockRepo
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	packed, err := codec.Pack("visitante1")
	require.NoError(t, err)

	mockRepo.EXPECT().
		AuthenticateUser(ctx, "VISITANTE", gomock.Any(), svc.now()).
		DoAndReturn(func(_ context.Context, name string, verify func(string) bool, at time.Time) (models.User, error) {
			require.True(t, verify(packed), "verify callback must accept the matching credential")
			return models.User{ID: 4, Name: name, Role: models.RoleVisitor, LastLoginAt: &at}, nil
		})

	identity, err := svc.Authenticate(ctx, "VISITANTE", "visitante1")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: 4, Name: "VISITANTE", Role: models.RoleVisitor}, identity)
}

func TestAuthService_Authenticate_CanonicalizesLegacyRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	// Older stores hold lowercase role values; the identity must still come
	// back canonical so permission checks keep working.
	mockRepo.EXPECT().
		AuthenticateUser(ctx, "ADMIN", gomock.Any(), gomock.Any()).
		Return(models.User{ID: 1, Name: "ADMIN", Role: models.Role("admin")}, nil)

	identity, err := svc.Authenticate(ctx, "ADMIN", "admin23")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.True(t, identity.Role.CanManageUsers())
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectation: empty input must not reach the store.
	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	for _, tt := range []struct{ name, password string }{
		{"", "secret"},
		{"ADMIN", ""},
		{"", ""},
	} {
		_, err := svc.Authenticate(ctx, tt.name, tt.password)
		assert.ErrorIs(t, err, ErrAuthFailed)
	}
}

func TestAuthService_Authenticate_CollapsesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	// Unknown user and wrong password must be indistinguishable.
	mockRepo.EXPECT().
		AuthenticateUser(ctx, "nobody", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)
	mockRepo.EXPECT().
		AuthenticateUser(ctx, "ADMIN", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrWrongCredential)

	_, errUnknown := svc.Authenticate(ctx, "nobody", "whatever")
	_, errWrong := svc.Authenticate(ctx, "ADMIN", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrAuthFailed)
	assert.ErrorIs(t, errWrong, ErrAuthFailed)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Authenticate_StorageErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		AuthenticateUser(ctx, "ADMIN", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrExecutingQuery)

	_, err := svc.Authenticate(ctx, "ADMIN", "admin23")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthFailed)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestAuthService_Authenticate_CaseSensitiveName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthService(t, ctrl)
	ctx := context.Background()

	// The service passes the name through untouched; "admin" is not "ADMIN".
	mockRepo.EXPECT().
		AuthenticateUser(ctx, "admin", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Authenticate(ctx, "admin", "admin23")
	assert.ErrorIs(t, err, ErrAuthFailed)
}
