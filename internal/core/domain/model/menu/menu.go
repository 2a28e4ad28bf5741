package menu

import (
	"errors"
	"fmt"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrMenuIsNotConstructed is returned when a Menu instance was not created
	// through NewMenu or RestoreMenu.
	ErrMenuIsNotConstructed = errors.New("Menu must be created via NewMenu or RestoreMenu")
)

// Menu is a sellable catering package priced per person. It carries an
// optional finite stock counter (quantite_restaurant); a nil counter means the
// stock is untracked and admission is unlimited.
//
// The order engine reserves stock on order creation and releases it again on
// cancellation or refusal. Reserve must only be called on an instance read
// under an exclusive row lock; the aggregate itself holds no lock.
type Menu struct {
	id                 kernel.UUID
	titre              string
	nbPersonneMini     int
	prixParPersonne    decimal.Decimal
	description        string
	quantiteRestaurant *int
	pretMateriel       bool

	isConstructed bool
}

// NewMenu creates a validated Menu.
// quantiteRestaurant may be nil for untracked stock; when set it must not be negative.
func NewMenu(
	id kernel.UUID,
	titre string,
	nbPersonneMini int,
	prixParPersonne decimal.Decimal,
	description string,
	quantiteRestaurant *int,
	pretMateriel bool,
) (*Menu, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if titre == "" {
		return nil, errs.NewValueIsRequiredError("titre")
	}
	if nbPersonneMini <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("nb_personne_mini",
			fmt.Errorf("%d is not greater than 0", nbPersonneMini))
	}
	if prixParPersonne.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("prix_par_personne",
			fmt.Errorf("%s is negative", prixParPersonne))
	}
	if quantiteRestaurant != nil && *quantiteRestaurant < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantite_restaurant",
			fmt.Errorf("%d is negative", *quantiteRestaurant))
	}

	return &Menu{
		id:                 id,
		titre:              titre,
		nbPersonneMini:     nbPersonneMini,
		prixParPersonne:    prixParPersonne,
		description:        description,
		quantiteRestaurant: quantiteRestaurant,
		pretMateriel:       pretMateriel,
		isConstructed:      true,
	}, nil
}

// RestoreMenu reconstructs a Menu from persistence without re-running the
// creation validations.
func RestoreMenu(
	id kernel.UUID,
	titre string,
	nbPersonneMini int,
	prixParPersonne decimal.Decimal,
	description string,
	quantiteRestaurant *int,
	pretMateriel bool,
) *Menu {
	return &Menu{
		id:                 id,
		titre:              titre,
		nbPersonneMini:     nbPersonneMini,
		prixParPersonne:    prixParPersonne,
		description:        description,
		quantiteRestaurant: quantiteRestaurant,
		pretMateriel:       pretMateriel,
		isConstructed:      true,
	}
}

// Validate ensures the Menu was created through a constructor.
func (m *Menu) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuIsNotConstructed
	}
	return nil
}

// ID returns the menu identifier.
func (m *Menu) ID() kernel.UUID {
	return m.id
}

// Titre returns the menu title.
func (m *Menu) Titre() string {
	return m.titre
}

// NbPersonneMini returns the catalog-level minimum headcount of the menu.
func (m *Menu) NbPersonneMini() int {
	return m.nbPersonneMini
}

// PrixParPersonne returns the per-person price.
func (m *Menu) PrixParPersonne() decimal.Decimal {
	return m.prixParPersonne
}

// Description returns the menu description.
func (m *Menu) Description() string {
	return m.description
}

// QuantiteRestaurant returns the remaining stock counter, or nil when the
// stock is untracked.
func (m *Menu) QuantiteRestaurant() *int {
	return m.quantiteRestaurant
}

// PretMateriel reports whether serving the menu requires an equipment loan
// that must later be returned.
func (m *Menu) PretMateriel() bool {
	return m.pretMateriel
}

// Reserve decrements the stock counter by nbPersonne.
//
// An untracked counter admits everything. A tracked counter that is exhausted
// or smaller than the request yields a ConflictError reporting the available
// and requested quantities, and leaves the counter untouched.
func (m *Menu) Reserve(nbPersonne int) error {
	if nbPersonne <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("nb_personne",
			fmt.Errorf("%d is not greater than 0", nbPersonne))
	}
	if m.quantiteRestaurant == nil {
		return nil
	}

	available := *m.quantiteRestaurant
	if available <= 0 {
		return errs.NewConflictErrorWithDetails(
			fmt.Sprintf("menu %s is out of stock", m.titre),
			map[string]any{
				"stock_disponible": 0,
				"stock_demande":    nbPersonne,
			})
	}
	if available < nbPersonne {
		return errs.NewConflictErrorWithDetails(
			fmt.Sprintf("menu %s has insufficient stock", m.titre),
			map[string]any{
				"stock_disponible": available,
				"stock_demande":    nbPersonne,
			})
	}

	remaining := available - nbPersonne
	m.quantiteRestaurant = &remaining
	return nil
}

// Release returns nbPersonne units to the stock counter. It is a no-op for
// untracked stock and for non-positive quantities.
func (m *Menu) Release(nbPersonne int) {
	if m.quantiteRestaurant == nil || nbPersonne <= 0 {
		return
	}
	restored := *m.quantiteRestaurant + nbPersonne
	m.quantiteRestaurant = &restored
}
