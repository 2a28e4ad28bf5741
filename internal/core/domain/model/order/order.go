package order

import (
	"errors"
	"fmt"
	"time"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// ContactMode is the channel used to reach the customer before cancelling or
// refusing an order.
type ContactMode string

const (
	// ContactModeGSM is a phone contact.
	ContactModeGSM ContactMode = "gsm"

	// ContactModeMail is an email contact.
	ContactModeMail ContactMode = "mail"
)

// Validate checks the contact mode against the known set.
func (c ContactMode) Validate() error {
	switch c {
	case ContactModeGSM, ContactModeMail:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("mode_contact",
			fmt.Errorf("%q is not gsm or mail", string(c)))
	}
}

// EquipmentReturnWindowDays is the number of business days the customer has
// to return loaned equipment before the penalty policy applies.
const EquipmentReturnWindowDays = 10

// Order is the aggregate root of a catering booking: one menu, served at an
// address on a future date, for a headcount, priced at creation time.
//
// Invariants:
//   - nb_personne is positive
//   - prix_total = prix_commande + prix_livraison, fixed-point decimals
//   - the status only moves along the transition table; annulee is set
//     exclusively through Cancel
//   - the menu reference is immutable after creation
type Order struct {
	id                  kernel.UUID
	numero              string
	customerID          *kernel.UUID
	menuID              kernel.UUID
	adressePrestation   string
	datePrestation      time.Time
	heurePrestation     string
	nbPersonne          int
	prixCommande        decimal.Decimal
	prixLivraison       decimal.Decimal
	prixTotal           decimal.Decimal
	statut              Status
	restitutionMateriel *bool
	dateCommande        time.Time

	annulationModeContact *ContactMode
	annulationMotif       *string
	annuleeAt             *time.Time
	retourMaterielAt      *time.Time

	isConstructed bool
}

// NewOrder creates a validated Order in en_attente status.
// Totals are computed by the caller (pricing service) and only checked for
// consistency here.
func NewOrder(
	id kernel.UUID,
	numero string,
	customerID kernel.UUID,
	menuID kernel.UUID,
	adressePrestation string,
	datePrestation time.Time,
	heurePrestation string,
	nbPersonne int,
	prixCommande decimal.Decimal,
	prixLivraison decimal.Decimal,
	prixTotal decimal.Decimal,
	dateCommande time.Time,
) (*Order, error) {
	o := &Order{
		statut:        StatusEnAttente,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumero(numero),
		o.setCustomerID(customerID),
		o.setMenuID(menuID),
		o.SetAdressePrestation(adressePrestation),
		o.SetDatePrestation(datePrestation),
		o.SetHeurePrestation(heurePrestation),
		o.SetNbPersonne(nbPersonne),
		o.UpdatePricing(prixCommande, prixLivraison, prixTotal),
	); err != nil {
		return nil, err
	}

	o.dateCommande = dateCommande
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. No creation-time
// validation is re-run; the database is trusted.
func RestoreOrder(
	id kernel.UUID,
	numero string,
	customerID *kernel.UUID,
	menuID kernel.UUID,
	adressePrestation string,
	datePrestation time.Time,
	heurePrestation string,
	nbPersonne int,
	prixCommande decimal.Decimal,
	prixLivraison decimal.Decimal,
	prixTotal decimal.Decimal,
	statut Status,
	restitutionMateriel *bool,
	dateCommande time.Time,
	annulationModeContact *ContactMode,
	annulationMotif *string,
	annuleeAt *time.Time,
	retourMaterielAt *time.Time,
) *Order {
	return &Order{
		id:                    id,
		numero:                numero,
		customerID:            customerID,
		menuID:                menuID,
		adressePrestation:     adressePrestation,
		datePrestation:        datePrestation,
		heurePrestation:       heurePrestation,
		nbPersonne:            nbPersonne,
		prixCommande:          prixCommande,
		prixLivraison:         prixLivraison,
		prixTotal:             prixTotal,
		statut:                statut,
		restitutionMateriel:   restitutionMateriel,
		dateCommande:          dateCommande,
		annulationModeContact: annulationModeContact,
		annulationMotif:       annulationMotif,
		annuleeAt:             annuleeAt,
		retourMaterielAt:      retourMaterielAt,
		isConstructed:         true,
	}
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Numero returns the human-facing order number.
func (o *Order) Numero() string { return o.numero }

// CustomerID returns the owning customer, or nil for ownerless orders.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }

// MenuID returns the referenced menu. The reference never changes after creation.
func (o *Order) MenuID() kernel.UUID { return o.menuID }

// AdressePrestation returns the service address.
func (o *Order) AdressePrestation() string { return o.adressePrestation }

// DatePrestation returns the service date.
func (o *Order) DatePrestation() time.Time { return o.datePrestation }

// HeurePrestation returns the service time as "HH:MM".
func (o *Order) HeurePrestation() string { return o.heurePrestation }

// NbPersonne returns the headcount.
func (o *Order) NbPersonne() int { return o.nbPersonne }

// PrixCommande returns the order subtotal.
func (o *Order) PrixCommande() decimal.Decimal { return o.prixCommande }

// PrixLivraison returns the delivery fee.
func (o *Order) PrixLivraison() decimal.Decimal { return o.prixLivraison }

// PrixTotal returns subtotal plus delivery fee.
func (o *Order) PrixTotal() decimal.Decimal { return o.prixTotal }

// Statut returns the current lifecycle status.
func (o *Order) Statut() Status { return o.statut }

// RestitutionMateriel returns the staff-set equipment-returned flag, or nil
// when it was never recorded.
func (o *Order) RestitutionMateriel() *bool { return o.restitutionMateriel }

// DateCommande returns the creation timestamp.
func (o *Order) DateCommande() time.Time { return o.dateCommande }

// AnnulationModeContact returns the contact channel recorded at cancellation.
func (o *Order) AnnulationModeContact() *ContactMode { return o.annulationModeContact }

// AnnulationMotif returns the cancellation reason.
func (o *Order) AnnulationMotif() *string { return o.annulationMotif }

// AnnuleeAt returns the cancellation timestamp.
func (o *Order) AnnuleeAt() *time.Time { return o.annuleeAt }

// RetourMaterielAt returns the moment the order entered retour_materiel.
func (o *Order) RetourMaterielAt() *time.Time { return o.retourMaterielAt }

// TransitionTo moves the order to target along the transition table.
// pretMateriel is the equipment-loan flag of the order's menu and selects the
// branch after livree.
//
// Entering retour_materiel stamps retourMaterielAt when unset. Completing
// from retour_materiel requires the equipment-returned flag to be true; when
// it is not, the transition fails with a conflict distinct from an
// invalid-transition error.
func (o *Order) TransitionTo(target Status, pretMateriel bool, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !o.statut.CanTransitionTo(target, pretMateriel) {
		allowed := o.statut.NextAllowed(pretMateriel)
		names := make([]string, len(allowed))
		for i, s := range allowed {
			names[i] = s.String()
		}
		return errs.NewConflictErrorWithDetails(
			fmt.Sprintf("cannot transition from %s to %s", o.statut, target),
			map[string]any{
				"statut_actuel":    o.statut.String(),
				"statuts_suivants": names,
			})
	}

	if o.statut == StatusRetourMateriel && target == StatusTerminee {
		if o.restitutionMateriel == nil || !*o.restitutionMateriel {
			return errs.NewConflictErrorWithDetails(
				"equipment has not been returned",
				map[string]any{
					"statut_actuel":         o.statut.String(),
					"restitution_materiel": false,
				})
		}
	}

	if target == StatusRetourMateriel && o.retourMaterielAt == nil {
		o.retourMaterielAt = &now
	}

	o.statut = target
	return nil
}

// Cancel moves the order to a terminal annulee or refusee status, recording
// the mandatory prior-customer-contact evidence. It is the only way to reach
// annulee.
func (o *Order) Cancel(kind Status, modeContact ContactMode, motif string, now time.Time) error {
	if kind != StatusAnnulee && kind != StatusRefusee {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%q is not annulee or refusee", kind))
	}
	if err := modeContact.Validate(); err != nil {
		return err
	}
	if motif == "" {
		return errs.NewValueIsRequiredError("motif")
	}
	if o.statut.IsTerminal() {
		return errs.NewConflictErrorWithDetails(
			fmt.Sprintf("order %s is already terminal", o.numero),
			map[string]any{"statut_actuel": o.statut.String()})
	}

	o.annulationModeContact = &modeContact
	o.annulationMotif = &motif
	o.annuleeAt = &now
	o.statut = kind
	return nil
}

// SetAdressePrestation updates the service address.
func (o *Order) SetAdressePrestation(adresse string) error {
	if adresse == "" {
		return errs.NewValueIsRequiredError("adresse_prestation")
	}
	o.adressePrestation = adresse
	return nil
}

// SetDatePrestation updates the service date.
func (o *Order) SetDatePrestation(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date_prestation")
	}
	o.datePrestation = date
	return nil
}

// SetHeurePrestation updates the service time. The value must be "HH:MM".
func (o *Order) SetHeurePrestation(heure string) error {
	if heure == "" {
		return errs.NewValueIsRequiredError("heure_prestation")
	}
	if _, err := time.Parse("15:04", heure); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("heure_prestation", err)
	}
	o.heurePrestation = heure
	return nil
}

// SetNbPersonne updates the headcount.
func (o *Order) SetNbPersonne(nbPersonne int) error {
	if nbPersonne <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("nb_personne",
			fmt.Errorf("%d is not greater than 0", nbPersonne))
	}
	o.nbPersonne = nbPersonne
	return nil
}

// SetRestitutionMateriel records whether the loaned equipment came back.
func (o *Order) SetRestitutionMateriel(returned bool) {
	o.restitutionMateriel = &returned
}

// UpdatePricing replaces the pricing triple. The total must equal subtotal
// plus delivery fee exactly.
func (o *Order) UpdatePricing(prixCommande, prixLivraison, prixTotal decimal.Decimal) error {
	if prixCommande.IsNegative() {
		return errs.NewValueIsInvalidError("prix_commande")
	}
	if prixLivraison.IsNegative() {
		return errs.NewValueIsInvalidError("prix_livraison")
	}
	if !prixTotal.Equal(prixCommande.Add(prixLivraison)) {
		return errs.NewValueIsInvalidErrorWithCause("prix_total",
			fmt.Errorf("%s is not %s + %s", prixTotal, prixCommande, prixLivraison))
	}
	o.prixCommande = prixCommande
	o.prixLivraison = prixLivraison
	o.prixTotal = prixTotal
	return nil
}

// EquipmentReturnOverdue reports whether the order sits in retour_materiel
// with the equipment still out past the return window.
func (o *Order) EquipmentReturnOverdue(now time.Time) bool {
	if o.statut != StatusRetourMateriel || o.retourMaterielAt == nil {
		return false
	}
	if o.restitutionMateriel != nil && *o.restitutionMateriel {
		return false
	}
	return BusinessDaysBetween(*o.retourMaterielAt, now) > EquipmentReturnWindowDays
}

// BusinessDaysBetween counts the weekdays after from, up to and including to.
// Both bounds are truncated to their calendar date.
func BusinessDaysBetween(from, to time.Time) int {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	days := 0
	for day.Before(end) {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumero(numero string) error {
	if numero == "" {
		return errs.NewValueIsRequiredError("numero_commande")
	}
	o.numero = numero
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = &customerID
	return nil
}

func (o *Order) setMenuID(menuID kernel.UUID) error {
	if err := menuID.Validate(); err != nil {
		return err
	}
	o.menuID = menuID
	return nil
}
