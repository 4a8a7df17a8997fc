package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the marketplace side an actor acts for.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Supplier
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Customer: "customer",
		Supplier: "supplier",
		Admin:    "admin",
	}
}

// Roles lists every valid role.
func Roles() []Role {
	return []Role{Customer, Supplier, Admin}
}

// RoleFromString parses the lower-case role name used in tokens and logs.
func RoleFromString(s string) (Role, error) {
	for r, name := range getRoleStrings() {
		if name == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Actor is an authenticated caller as resolved by the identity provider.
type Actor struct {
	id   UUID
	role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// MustActor is NewActor for tests and fixtures.
func MustActor(id UUID, role Role) Actor {
	a, err := NewActor(id, role)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Validate() error {
	if a.id.IsZero() || a.role == UnknownRole {
		return ErrActorIsNotConstructed
	}
	return nil
}

// AsCustomer returns the actor id typed as a customer id.
func (a Actor) AsCustomer() CustomerID {
	return CustomerID{a.id}
}

// AsSupplier returns the actor id typed as a supplier id.
func (a Actor) AsSupplier() SupplierID {
	return SupplierID{a.id}
}

func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}
