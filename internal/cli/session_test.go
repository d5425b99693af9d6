// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/service"
	"github.com/mgastelum/inventario/models"
)

type fakeAuthService struct {
	identity models.Identity
	err      error
	attempts int
}

func (f *fakeAuthService) Authenticate(_ context.Context, _, _ string) (models.Identity, error) {
	f.attempts++
	if f.err != nil {
		return models.Identity{}, f.err
	}
	return f.identity, nil
}

type fakeWarehouseService struct {
	service.WarehouseService

	warehouses []models.Warehouse
	names      []string
}

func (f *fakeWarehouseService) ListWarehouses(_ context.Context, _ models.Identity, _ models.WarehouseFilter) ([]models.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeWarehouseService) WarehouseNames(_ context.Context, _ models.Identity) ([]string, error) {
	return f.names, nil
}

type fakeProductService struct {
	service.ProductService

	created models.Product
}

func (f *fakeProductService) CreateProduct(_ context.Context, _ models.Identity, product models.Product) (models.Product, error) {
	f.created = product
	product.ID = 7
	return product, nil
}

func adminIdentity() models.Identity {
	return models.Identity{ID: 1, Name: "ADMIN", Role: models.RoleAdmin}
}

func runScript(t *testing.T, services *service.Services, script string) string {
	t.Helper()
	stubTerminal(t, false)

	var out bytes.Buffer
	session := NewSession(services, strings.NewReader(script), &out, logger.Nop())
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("session: %v", err)
	}
	return out.String()
}

func TestSession_LoginAndWhoami(t *testing.T) {
	auth := &fakeAuthService{identity: adminIdentity()}
	services := &service.Services{AuthService: auth}

	out := runScript(t, services, "ADMIN\nadmin23\nwhoami\nexit\n")

	if !strings.Contains(out, "Signed in as ADMIN (ADMIN)") {
		t.Fatalf("missing greeting, out=%q", out)
	}
	if auth.attempts != 1 {
		t.Fatalf("attempts = %d, want 1", auth.attempts)
	}
}

func TestSession_LoginAborted(t *testing.T) {
	stubTerminal(t, false)

	auth := &fakeAuthService{err: service.ErrAuthFailed}
	services := &service.Services{AuthService: auth}

	var out bytes.Buffer
	script := strings.Repeat("ADMIN\nwrong\n", maxLoginAttempts)
	session := NewSession(services, strings.NewReader(script), &out, logger.Nop())

	err := session.Run(context.Background())
	if !errors.Is(err, ErrLoginAborted) {
		t.Fatalf("err = %v, want ErrLoginAborted", err)
	}
	if auth.attempts != maxLoginAttempts {
		t.Fatalf("attempts = %d, want %d", auth.attempts, maxLoginAttempts)
	}
}

func TestSession_LoginStorageErrorStopsSession(t *testing.T) {
	stubTerminal(t, false)

	broken := errors.New("database is locked")
	services := &service.Services{AuthService: &fakeAuthService{err: broken}}

	var out bytes.Buffer
	session := NewSession(services, strings.NewReader("ADMIN\nadmin23\n"), &out, logger.Nop())

	if err := session.Run(context.Background()); !errors.Is(err, broken) {
		t.Fatalf("err = %v, want %v", err, broken)
	}
}

func TestSession_ListWarehouses(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	services := &service.Services{
		AuthService: &fakeAuthService{identity: adminIdentity()},
		WarehouseService: &fakeWarehouseService{warehouses: []models.Warehouse{
			{ID: 1, Name: "CENTRO", CreatedAt: created},
			{ID: 2, Name: "NORTE", CreatedAt: created, LastModifiedBy: "ALMACENES"},
		}},
	}

	out := runScript(t, services, "ADMIN\nadmin23\nwarehouses\nexit\n")

	for _, want := range []string{"CENTRO", "NORTE", "ALMACENES", "2026-02-01 10:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSession_ProductAdd(t *testing.T) {
	products := &fakeProductService{}
	services := &service.Services{
		AuthService:      &fakeAuthService{identity: adminIdentity()},
		WarehouseService: &fakeWarehouseService{names: []string{"CENTRO"}},
		ProductService:   products,
	}

	script := strings.Join([]string{
		"ADMIN", "admin23",
		"product add",
		"Lampara", "12.50", "3", "HOGAR", "CENTRO",
		"exit", "",
	}, "\n")

	out := runScript(t, services, script)

	if !strings.Contains(out, "created product 7") {
		t.Fatalf("missing confirmation, out=%q", out)
	}
	got := products.created
	if got.Name != "Lampara" || got.Price != 12.5 || got.Quantity != 3 || got.Department != "HOGAR" {
		t.Fatalf("created = %+v", got)
	}
	if got.Warehouse == nil || *got.Warehouse != "CENTRO" {
		t.Fatalf("warehouse = %v, want CENTRO", got.Warehouse)
	}
}

func TestSession_ProductAddNoWarehouse(t *testing.T) {
	products := &fakeProductService{}
	services := &service.Services{
		AuthService:      &fakeAuthService{identity: adminIdentity()},
		WarehouseService: &fakeWarehouseService{},
		ProductService:   products,
	}

	script := strings.Join([]string{
		"ADMIN", "admin23",
		"product add",
		"Lampara", "12.50", "3", "HOGAR", "-",
		"exit", "",
	}, "\n")

	runScript(t, services, script)

	if products.created.Warehouse != nil {
		t.Fatalf("warehouse = %v, want nil", products.created.Warehouse)
	}
}

type fakeUserAdminService struct {
	service.UserAdminService

	created   models.User
	deletedID int64
}

func (f *fakeUserAdminService) CreateUser(_ context.Context, _ models.Identity, name, password, role string) (models.User, error) {
	f.created = models.User{ID: 5, Name: name, Role: models.Role(role)}
	return f.created, nil
}

func (f *fakeUserAdminService) DeleteUser(_ context.Context, _ models.Identity, id int64) error {
	f.deletedID = id
	return nil
}

func TestSession_UserAddAndDelete(t *testing.T) {
	users := &fakeUserAdminService{}
	services := &service.Services{
		AuthService:      &fakeAuthService{identity: adminIdentity()},
		UserAdminService: users,
	}

	script := strings.Join([]string{
		"ADMIN", "admin23",
		"user add",
		"CONTADOR", "contador7", "VISITOR",
		"user del 5",
		"exit", "",
	}, "\n")

	out := runScript(t, services, script)

	if !strings.Contains(out, "created user 5 (CONTADOR)") {
		t.Fatalf("missing create confirmation, out=%q", out)
	}
	if users.created.Name != "CONTADOR" {
		t.Fatalf("created = %+v", users.created)
	}
	if users.deletedID != 5 {
		t.Fatalf("deletedID = %d, want 5", users.deletedID)
	}
	if !strings.Contains(out, "deleted user 5") {
		t.Fatalf("missing delete confirmation, out=%q", out)
	}
}

func TestSession_UnknownCommand(t *testing.T) {
	services := &service.Services{AuthService: &fakeAuthService{identity: adminIdentity()}}

	out := runScript(t, services, "ADMIN\nadmin23\nfrobnicate\nexit\n")

	if !strings.Contains(out, "unknown command") {
		t.Fatalf("missing error, out=%q", out)
	}
}
