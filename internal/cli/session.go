// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mgastelum/inventario/internal/logger"
	"github.com/mgastelum/inventario/internal/service"
	"github.com/mgastelum/inventario/models"
)

// maxLoginAttempts bounds the interactive login loop.
const maxLoginAttempts = 3

// ErrLoginAborted is returned by Run when no login attempt succeeded.
var ErrLoginAborted = errors.New("login aborted")

// Session is the interactive command loop of the tool. It carries no
// business logic: every decision is delegated to the services, and the
// session only parses input and renders results as plain text.
type Session struct {
	services *service.Services
	logger   *logger.Logger

	reader *bufio.Reader
	out    io.Writer

	identity models.Identity
}

// NewSession constructs a Session reading commands from in and writing
// rendered results to out.
func NewSession(services *service.Services, in io.Reader, out io.Writer, logger *logger.Logger) *Session {
	return &Session{
		services: services,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run drives the session: login first, then the command loop until the
// user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	ctx = s.logger.WithContext(ctx)

	if err := s.login(ctx); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Signed in as %s (%s). Type 'help' for commands.\n", s.identity.Name, s.identity.Role)

	for {
		line, err := getSimpleText(s.reader, s.identity.Name+">", s.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := s.dispatch(ctx, fields); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Session) login(ctx context.Context) error {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		name, err := getSimpleText(s.reader, "User", s.out)
		if err != nil {
			return err
		}
		password, err := getPassword(s.reader, "Password", s.out)
		if err != nil {
			return err
		}

		identity, err := s.services.AuthService.Authenticate(ctx, name, password)
		if err == nil {
			s.identity = identity
			return nil
		}
		if !errors.Is(err, service.ErrAuthFailed) {
			return err
		}

		s.logger.Warn().Int("attempt", attempt).Msg("authentication attempt failed")
		fmt.Fprintln(s.out, "Invalid user or password.")
	}

	return ErrLoginAborted
}

func (s *Session) dispatch(ctx context.Context, fields []string) error {
	command, args := fields[0], fields[1:]

	switch command {
	case "help":
		s.printHelp()
		return nil
	case "whoami":
		fmt.Fprintf(s.out, "%s (%s)\n", s.identity.Name, s.identity.Role)
		return nil
	case "products":
		return s.listProducts(ctx, args)
	case "product":
		return s.productCommand(ctx, args)
	case "warehouses":
		return s.listWarehouses(ctx, args)
	case "warehouse":
		return s.warehouseCommand(ctx, args)
	case "users":
		return s.listUsers(ctx)
	case "user":
		return s.userCommand(ctx, args)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", command)
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  products [find <text>]          list products, optionally by name match
  product show <id>               show one product
  product add                     create a product (prompts for fields)
  product edit <id>               update a product (empty input keeps value)
  product del <id>                delete a product
  warehouses [find <text>]        list warehouses
  warehouse add                   create a warehouse
  warehouse rename <id>           rename a warehouse
  warehouse del <id>              delete a warehouse
  users                           list accounts (admin)
  user add                        create an account (admin)
  user role <id> <role>           reassign a role (admin)
  user passwd <id>                reset a password (admin)
  user del <id>                   delete an account (admin)
  whoami                          show the signed-in account
  exit                            leave
`)
}

func (s *Session) listProducts(ctx context.Context, args []string) error {
	var filter models.ProductFilter
	if len(args) == 2 && args[0] == "find" {
		filter.NameContains = &args[1]
	} else if len(args) != 0 {
		return errors.New("usage: products [find <text>]")
	}

	products, err := s.services.ProductService.ListProducts(ctx, s.identity, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tDEPARTMENT\tWAREHOUSE\tMODIFIED BY")
	for _, p := range products {
		warehouse := "-"
		if p.Warehouse != nil {
			warehouse = *p.Warehouse
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Price, p.Quantity, p.Department, warehouse, orDash(p.LastModifiedBy))
	}
	return w.Flush()
}

func (s *Session) productCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: product show|add|edit|del ...")
	}

	switch args[0] {
	case "show":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		product, err := s.services.ProductService.GetProduct(ctx, s.identity, id)
		if err != nil {
			return err
		}
		s.printProduct(product)
		return nil

	case "add":
		product, err := s.promptProduct(ctx, models.Product{})
		if err != nil {
			return err
		}
		created, err := s.services.ProductService.CreateProduct(ctx, s.identity, product)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "created product %d\n", created.ID)
		return nil

	case "edit":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		current, err := s.services.ProductService.GetProduct(ctx, s.identity, id)
		if err != nil {
			return err
		}
		product, err := s.promptProduct(ctx, current)
		if err != nil {
			return err
		}
		if err := s.services.ProductService.UpdateProduct(ctx, s.identity, product); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "updated product %d\n", id)
		return nil

	case "del":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := s.services.ProductService.DeleteProduct(ctx, s.identity, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "deleted product %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown product subcommand %q", args[0])
	}
}

// promptProduct collects product fields interactively. Defaults come from
// the current value so edits keep unchanged fields.
func (s *Session) promptProduct(ctx context.Context, current models.Product) (models.Product, error) {
	product := current

	name, err := getSimpleText(s.reader, promptWithDefault("Name", current.Name), s.out)
	if err != nil {
		return models.Product{}, err
	}
	if name != "" {
		product.Name = name
	}

	priceText, err := getSimpleText(s.reader, promptWithDefault("Price", fmt.Sprintf("%.2f", current.Price)), s.out)
	if err != nil {
		return models.Product{}, err
	}
	if priceText != "" {
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("invalid price %q", priceText)
		}
		product.Price = price
	}

	quantityText, err := getSimpleText(s.reader, promptWithDefault("Quantity", strconv.FormatInt(current.Quantity, 10)), s.out)
	if err != nil {
		return models.Product{}, err
	}
	if quantityText != "" {
		quantity, err := strconv.ParseInt(quantityText, 10, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("invalid quantity %q", quantityText)
		}
		product.Quantity = quantity
	}

	department, err := getSimpleText(s.reader, promptWithDefault("Department", current.Department), s.out)
	if err != nil {
		return models.Product{}, err
	}
	if department != "" {
		product.Department = department
	}

	names, err := s.services.WarehouseService.WarehouseNames(ctx, s.identity)
	if err != nil {
		return models.Product{}, err
	}
	if len(names) > 0 {
		fmt.Fprintf(s.out, "Warehouses: %s\n", strings.Join(names, ", "))
	}
	currentWarehouse := ""
	if current.Warehouse != nil {
		currentWarehouse = *current.Warehouse
	}
	warehouse, err := getSimpleText(s.reader, promptWithDefault("Warehouse ('-' for none)", currentWarehouse), s.out)
	if err != nil {
		return models.Product{}, err
	}
	switch warehouse {
	case "":
		// keep current
	case "-":
		product.Warehouse = nil
	default:
		product.Warehouse = &warehouse
	}

	return product, nil
}

func (s *Session) printProduct(p models.Product) {
	warehouse := "-"
	if p.Warehouse != nil {
		warehouse = *p.Warehouse
	}
	fmt.Fprintf(s.out, "id:          %d\n", p.ID)
	fmt.Fprintf(s.out, "name:        %s\n", p.Name)
	fmt.Fprintf(s.out, "price:       %.2f\n", p.Price)
	fmt.Fprintf(s.out, "quantity:    %d\n", p.Quantity)
	fmt.Fprintf(s.out, "department:  %s\n", orDash(p.Department))
	fmt.Fprintf(s.out, "warehouse:   %s\n", warehouse)
	fmt.Fprintf(s.out, "created:     %s\n", formatTime(&p.CreatedAt))
	fmt.Fprintf(s.out, "modified:    %s by %s\n", formatTime(p.LastModifiedAt), orDash(p.LastModifiedBy))
}

func (s *Session) listWarehouses(ctx context.Context, args []string) error {
	var filter models.WarehouseFilter
	if len(args) == 2 && args[0] == "find" {
		filter.NameContains = &args[1]
	} else if len(args) != 0 {
		return errors.New("usage: warehouses [find <text>]")
	}

	warehouses, err := s.services.WarehouseService.ListWarehouses(ctx, s.identity, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tMODIFIED\tMODIFIED BY")
	for _, wh := range warehouses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			wh.ID, wh.Name, formatTime(&wh.CreatedAt), formatTime(wh.LastModifiedAt), orDash(wh.LastModifiedBy))
	}
	return w.Flush()
}

func (s *Session) warehouseCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: warehouse add|rename|del ...")
	}

	switch args[0] {
	case "add":
		name, err := getSimpleText(s.reader, "Name", s.out)
		if err != nil {
			return err
		}
		created, err := s.services.WarehouseService.CreateWarehouse(ctx, s.identity, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "created warehouse %d\n", created.ID)
		return nil

	case "rename":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		name, err := getSimpleText(s.reader, "New name", s.out)
		if err != nil {
			return err
		}
		if err := s.services.WarehouseService.RenameWarehouse(ctx, s.identity, id, name); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "renamed warehouse %d\n", id)
		return nil

	case "del":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := s.services.WarehouseService.DeleteWarehouse(ctx, s.identity, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "deleted warehouse %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown warehouse subcommand %q", args[0])
	}
}

func (s *Session) listUsers(ctx context.Context) error {
	users, err := s.services.UserAdminService.ListUsers(ctx, s.identity)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROLE\tLAST LOGIN")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Role, formatTime(u.LastLoginAt))
	}
	return w.Flush()
}

func (s *Session) userCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: user add|role|passwd|del ...")
	}

	switch args[0] {
	case "add":
		name, err := getSimpleText(s.reader, "Name", s.out)
		if err != nil {
			return err
		}
		password, err := getPassword(s.reader, "Password", s.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Roles: %s\n", rolesLine())
		role, err := getSimpleText(s.reader, "Role", s.out)
		if err != nil {
			return err
		}
		created, err := s.services.UserAdminService.CreateUser(ctx, s.identity, name, password, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "created user %d (%s)\n", created.ID, created.Name)
		return nil

	case "role":
		if len(args) != 3 {
			return errors.New("usage: user role <id> <role>")
		}
		id, err := parseID(args[1:2])
		if err != nil {
			return err
		}
		if err := s.services.UserAdminService.ChangeUserRole(ctx, s.identity, id, args[2]); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "role of user %d set to %s\n", id, strings.ToUpper(args[2]))
		return nil

	case "passwd":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		newPassword, err := getPassword(s.reader, "New password", s.out)
		if err != nil {
			return err
		}
		if err := s.services.UserAdminService.ResetUserPassword(ctx, s.identity, id, newPassword); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "password of user %d reset\n", id)
		return nil

	case "del":
		id, err := parseID(args[1:])
		if err != nil {
			return err
		}
		if err := s.services.UserAdminService.DeleteUser(ctx, s.identity, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "deleted user %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand %q", args[0])
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func rolesLine() string {
	names := make([]string, len(models.Roles))
	for i, role := range models.Roles {
		names[i] = string(role)
	}
	return strings.Join(names, ", ")
}

func promptWithDefault(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, current)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
