package commands

import (
	"errors"
	"time"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"
	"traiteur/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// OrderPatch is the set of fields an update request may carry. Nil fields are
// left untouched. Which non-nil fields are acceptable depends on the actor's
// role and, for owners, on the order's status; that scoping is enforced by
// the handler.
type OrderPatch struct {
	AdressePrestation   *string
	DatePrestation      *time.Time
	HeurePrestation     *string
	NbPersonne          *int
	Statut              *order.Status
	RestitutionMateriel *bool
	PrixLivraison       *decimal.Decimal
}

// IsEmpty reports whether the patch carries no field at all.
func (p OrderPatch) IsEmpty() bool {
	return p.AdressePrestation == nil &&
		p.DatePrestation == nil &&
		p.HeurePrestation == nil &&
		p.NbPersonne == nil &&
		p.Statut == nil &&
		p.RestitutionMateriel == nil &&
		p.PrixLivraison == nil
}

// UpdateOrderCommand represents a role-scoped partial update of an order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   account.Actor
	patch   OrderPatch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order.
// The patch must carry at least one field; a statut field, when present,
// must be a known status.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	actor account.Actor,
	patch OrderPatch,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the targeted order.
func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the acting user.
func (c UpdateOrderCommand) Actor() account.Actor { return c.actor }

// Patch returns the requested field changes.
func (c UpdateOrderCommand) Patch() OrderPatch { return c.patch }

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setActor(actor account.Actor) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.IsEmpty() {
		return errs.NewValueIsRequiredError("patch")
	}
	if patch.Statut != nil {
		if err := patch.Statut.Validate(); err != nil {
			return err
		}
	}
	c.patch = patch
	return nil
}
