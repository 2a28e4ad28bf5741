package commands

import (
	"errors"
	"time"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/pkg/errs"
	"traiteur/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a customer's request to book a menu for a
// future date. The delivery fee is optional and defaults to zero.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, menuID,
//	    "12 rue des Lilas", serviceDate, "18:30", 4, decimal.Zero)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID        kernel.UUID
	menuID            kernel.UUID
	adressePrestation string
	datePrestation    time.Time
	heurePrestation   string
	nbPersonne        int
	prixLivraison     decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to book a menu.
// Validates identifiers, a non-empty address, a parseable "HH:MM" service
// time, a positive headcount and a non-negative delivery fee.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	menuID kernel.UUID,
	adressePrestation string,
	datePrestation time.Time,
	heurePrestation string,
	nbPersonne int,
	prixLivraison decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuID(menuID),
		cmd.setAdressePrestation(adressePrestation),
		cmd.setDatePrestation(datePrestation),
		cmd.setHeurePrestation(heurePrestation),
		cmd.setNbPersonne(nbPersonne),
		cmd.setPrixLivraison(prixLivraison),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// MenuID returns the booked menu.
func (c CreateOrderCommand) MenuID() kernel.UUID { return c.menuID }

// AdressePrestation returns the service address.
func (c CreateOrderCommand) AdressePrestation() string { return c.adressePrestation }

// DatePrestation returns the service date.
func (c CreateOrderCommand) DatePrestation() time.Time { return c.datePrestation }

// HeurePrestation returns the service time as "HH:MM".
func (c CreateOrderCommand) HeurePrestation() string { return c.heurePrestation }

// NbPersonne returns the headcount.
func (c CreateOrderCommand) NbPersonne() int { return c.nbPersonne }

// PrixLivraison returns the delivery fee.
func (c CreateOrderCommand) PrixLivraison() decimal.Decimal { return c.prixLivraison }

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setMenuID(menuID kernel.UUID) error {
	if err := menuID.Validate(); err != nil {
		return err
	}
	c.menuID = menuID
	return nil
}

func (c *CreateOrderCommand) setAdressePrestation(adresse string) error {
	if adresse == "" {
		return errs.NewValueIsRequiredError("adresse_prestation")
	}
	c.adressePrestation = adresse
	return nil
}

func (c *CreateOrderCommand) setDatePrestation(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date_prestation")
	}
	c.datePrestation = date
	return nil
}

func (c *CreateOrderCommand) setHeurePrestation(heure string) error {
	if heure == "" {
		return errs.NewValueIsRequiredError("heure_prestation")
	}
	if _, err := time.Parse("15:04", heure); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("heure_prestation", err)
	}
	c.heurePrestation = heure
	return nil
}

func (c *CreateOrderCommand) setNbPersonne(nbPersonne int) error {
	if nbPersonne <= 0 {
		return errs.NewValueIsInvalidError("nb_personne")
	}
	c.nbPersonne = nbPersonne
	return nil
}

func (c *CreateOrderCommand) setPrixLivraison(prix decimal.Decimal) error {
	if prix.IsNegative() {
		return errs.NewValueIsInvalidError("prix_livraison")
	}
	c.prixLivraison = prix
	return nil
}
