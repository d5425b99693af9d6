// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Miguel Gastelum

package models

import (
	"fmt"
	"strings"
)

// Role is the access level attached to a user account. The set is closed:
// anything outside the four constants below is rejected at parse time.
type Role string

const (
	// RoleAdmin may perform every operation, including user administration.
	RoleAdmin Role = "ADMIN"
	// RoleProducts may read everything and mutate products.
	RoleProducts Role = "PRODUCTS"
	// RoleWarehouses may read everything and mutate warehouses.
	RoleWarehouses Role = "WAREHOUSES"
	// RoleVisitor is read-only.
	RoleVisitor Role = "VISITOR"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleProducts, RoleWarehouses, RoleVisitor}

// ParseRole normalizes s to canonical uppercase and validates it against the
// closed role set.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if role == known {
			return role, nil
		}
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

// Canonical returns the role in canonical uppercase form. Legacy stores may
// hold mixed-case role values; permissions are always evaluated against the
// canonical form, so identities must carry it.
func (r Role) Canonical() Role {
	return Role(strings.ToUpper(strings.TrimSpace(string(r))))
}

// CanManageUsers reports whether the role may change other accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanMutateProducts reports whether the role may create, update or delete
// products.
func (r Role) CanMutateProducts() bool {
	return r == RoleAdmin || r == RoleProducts
}

// CanMutateWarehouses reports whether the role may create, update or delete
// warehouses.
func (r Role) CanMutateWarehouses() bool {
	return r == RoleAdmin || r == RoleWarehouses
}
