package queries

import (
	"errors"
	"time"

	"traiteur/internal/core/domain/model/account"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order by its identifier.
//
// Customers only see their own orders; staff see everything. The actor is
// part of the query so the read side enforces the same visibility rule as
// the write side.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   account.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order.
func NewGetOrderQuery(orderID kernel.UUID, actor account.Actor) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setActor(actor),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// Actor returns the requesting user.
func (q GetOrderQuery) Actor() account.Actor { return q.actor }

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor account.Actor) error {
	if err := actor.ID().Validate(); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

// OrderResponse is the read model of an order. Optional columns come back as
// pointers so the HTTP layer can render them as JSON nulls.
type OrderResponse struct {
	ID                    kernel.UUID     `json:"id"`
	NumeroCommande        string          `json:"numero_commande"`
	CustomerID            *kernel.UUID    `json:"customer_id"`
	MenuID                kernel.UUID     `json:"menu_id"`
	MenuTitre             string          `json:"menu_titre"`
	AdressePrestation     string          `json:"adresse_prestation"`
	DatePrestation        time.Time       `json:"date_prestation"`
	HeurePrestation       string          `json:"heure_prestation"`
	NbPersonne            int             `json:"nb_personne"`
	PrixCommande          decimal.Decimal `json:"prix_commande"`
	PrixLivraison         decimal.Decimal `json:"prix_livraison"`
	PrixTotal             decimal.Decimal `json:"prix_total"`
	Statut                string          `json:"statut"`
	StatutLabel           string          `json:"statut_label"`
	RestitutionMateriel   *bool           `json:"restitution_materiel"`
	DateCommande          time.Time       `json:"date_commande"`
	AnnulationModeContact *string         `json:"annulation_mode_contact"`
	AnnulationMotif       *string         `json:"annulation_motif"`
	AnnuleeAt             *time.Time      `json:"annulee_at"`
	RetourMaterielAt      *time.Time      `json:"retour_materiel_at"`
}
