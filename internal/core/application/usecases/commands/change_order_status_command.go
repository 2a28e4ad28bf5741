package commands

import (
	"errors"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a staff request to advance an order
// along its lifecycle. The target status must be a known status; whether the
// transition is legal is decided against the transition table at handling
// time, and annulee is rejected outright (only the cancellation operation may
// set it).
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   account.Actor
	statut  order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to advance an order's status.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actor account.Actor,
	statut order.Status,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setStatut(statut),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the targeted order.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the acting user.
func (c ChangeOrderStatusCommand) Actor() account.Actor { return c.actor }

// Statut returns the requested target status.
func (c ChangeOrderStatusCommand) Statut() order.Status { return c.statut }

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor account.Actor) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setStatut(statut order.Status) error {
	if err := statut.Validate(); err != nil {
		return err
	}
	c.statut = statut
	return nil
}
