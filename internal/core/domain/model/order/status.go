package order

import (
	"fmt"

	"traiteur/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Statuses are string-backed; the
// raw value is what goes over the wire and into the database.
//
// Lifecycle:
//
//	en_attente ──> acceptee ──> preparation ──> livraison ──> livree ──> terminee
//	     │                                                       │            ▲
//	     └──> refusee                                            └──> retour_materiel
//
// The livree fork depends on the menu: equipment-loan menus go through
// retour_materiel, the rest complete directly. annulee is reachable from any
// non-terminal state, but only through Order.Cancel, never through a plain
// transition.
type Status string

const (
	// StatusEnAttente is the initial state of every order.
	StatusEnAttente Status = "en_attente"

	// StatusAcceptee marks an order accepted by staff.
	StatusAcceptee Status = "acceptee"

	// StatusRefusee is the terminal state of a refused order.
	StatusRefusee Status = "refusee"

	// StatusPreparation marks an order being prepared.
	StatusPreparation Status = "preparation"

	// StatusLivraison marks an order out for delivery.
	StatusLivraison Status = "livraison"

	// StatusLivree marks a delivered order.
	StatusLivree Status = "livree"

	// StatusRetourMateriel marks a delivered order waiting for the loaned
	// equipment to come back.
	StatusRetourMateriel Status = "retour_materiel"

	// StatusTerminee is the terminal state of a fulfilled order.
	StatusTerminee Status = "terminee"

	// StatusAnnulee is the terminal state of a cancelled order.
	StatusAnnulee Status = "annulee"
)

// transitions is the single authoritative transition table. Nothing else in
// the codebase may decide which status follows which.
//
// The livree row lists both successors; NextAllowed narrows it to one
// depending on whether the menu requires an equipment loan.
var transitions = map[Status][]Status{
	StatusEnAttente:      {StatusAcceptee, StatusRefusee},
	StatusAcceptee:       {StatusPreparation},
	StatusPreparation:    {StatusLivraison},
	StatusLivraison:      {StatusLivree},
	StatusLivree:         {StatusRetourMateriel, StatusTerminee},
	StatusRetourMateriel: {StatusTerminee},
	StatusRefusee:        {},
	StatusAnnulee:        {},
	StatusTerminee:       {},
}

// StatusFromString parses a wire value into a Status.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks the status against the known set.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("statut",
			fmt.Errorf("%q is not a known status", string(s)))
	}
	return nil
}

// String returns the wire value of the status.
func (s Status) String() string {
	return string(s)
}

// Label returns the human-readable French label of the status.
func (s Status) Label() string {
	switch s {
	case StatusEnAttente:
		return "En attente"
	case StatusAcceptee:
		return "Acceptée"
	case StatusRefusee:
		return "Refusée"
	case StatusPreparation:
		return "En préparation"
	case StatusLivraison:
		return "En cours de livraison"
	case StatusLivree:
		return "Livrée"
	case StatusRetourMateriel:
		return "Retour matériel"
	case StatusTerminee:
		return "Terminée"
	case StatusAnnulee:
		return "Annulée"
	default:
		return string(s)
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// NextAllowed returns the statuses reachable from s for a menu with the given
// equipment-loan flag. From livree, only one branch is open: retour_materiel
// when equipment was loaned, terminee otherwise.
func (s Status) NextAllowed(pretMateriel bool) []Status {
	if s == StatusLivree {
		if pretMateriel {
			return []Status{StatusRetourMateriel}
		}
		return []Status{StatusTerminee}
	}
	return transitions[s]
}

// CanTransitionTo reports whether target is reachable from s.
func (s Status) CanTransitionTo(target Status, pretMateriel bool) bool {
	for _, next := range s.NextAllowed(pretMateriel) {
		if next == target {
			return true
		}
	}
	return false
}
