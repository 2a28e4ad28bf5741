// Package account models the acting user of a request: identity plus role set.
// Registration and authentication live outside this service; the actor arrives
// already authenticated and is used purely for authorization decisions in the
// order engine.
package account

import (
	"fmt"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/pkg/errs"
)

// Role is a coarse-grained permission group carried by a user.
type Role string

const (
	// RoleCustomer is the default role of a registered client.
	RoleCustomer Role = "ROLE_USER"

	// RoleEmployee marks restaurant staff managing order fulfillment.
	RoleEmployee Role = "ROLE_EMPLOYEE"

	// RoleAdmin grants unrestricted mutation of orders.
	RoleAdmin Role = "ROLE_ADMIN"
)

// Validate checks the role against the known set.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Actor is the authenticated user on whose behalf a command runs.
type Actor struct {
	id    kernel.UUID
	roles []Role
}

// NewActor creates an actor from its identifier and role set.
// Every role must be a known role and the id must be constructed.
func NewActor(id kernel.UUID, roles []Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return Actor{}, err
		}
	}

	return Actor{id: id, roles: roles}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor is an administrator.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// IsEmployee reports whether the actor is restaurant staff (non-admin employees included).
func (a Actor) IsEmployee() bool {
	return a.HasRole(RoleEmployee)
}

// IsStaff reports whether the actor is staff or admin.
func (a Actor) IsStaff() bool {
	return a.IsAdmin() || a.IsEmployee()
}

// Owns reports whether the actor is the owner referenced by customerID.
// A nil customerID (order without owner, degraded flows) is owned by nobody.
func (a Actor) Owns(customerID *kernel.UUID) bool {
	return customerID != nil && a.id.IsEqual(*customerID)
}
