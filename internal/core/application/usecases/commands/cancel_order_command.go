package commands

import (
	"errors"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"
	"traiteur/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand represents a staff decision to cancel or refuse an order.
//
// Cancellation requires documented prior customer contact: the contact mode
// and the reason are mandatory business data, not optional metadata. Kind
// selects the terminal status and defaults to annulee.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       account.Actor
	modeContact order.ContactMode
	motif       string
	kind        order.Status

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel or refuse an order.
// kind may be empty, in which case it defaults to annulee; otherwise it must
// be annulee or refusee.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	actor account.Actor,
	modeContact order.ContactMode,
	motif string,
	kind order.Status,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if kind == "" {
		kind = order.StatusAnnulee
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setModeContact(modeContact),
		cmd.setMotif(motif),
		cmd.setKind(kind),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the targeted order.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Actor returns the acting user.
func (c CancelOrderCommand) Actor() account.Actor { return c.actor }

// ModeContact returns the documented contact channel.
func (c CancelOrderCommand) ModeContact() order.ContactMode { return c.modeContact }

// Motif returns the cancellation reason.
func (c CancelOrderCommand) Motif() string { return c.motif }

// Kind returns the requested terminal status, annulee or refusee.
func (c CancelOrderCommand) Kind() order.Status { return c.kind }

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActor(actor account.Actor) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CancelOrderCommand) setModeContact(mode order.ContactMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.modeContact = mode
	return nil
}

func (c *CancelOrderCommand) setMotif(motif string) error {
	if motif == "" {
		return errs.NewValueIsRequiredError("motif")
	}
	c.motif = motif
	return nil
}

func (c *CancelOrderCommand) setKind(kind order.Status) error {
	if kind != order.StatusAnnulee && kind != order.StatusRefusee {
		return errs.NewValueIsInvalidError("type")
	}
	c.kind = kind
	return nil
}
