package queries

import (
	"context"
	"database/sql"
	"errors"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order from the database, joined
// with its menu title for display.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A customer asking for someone else's order gets
// an authorization error, not a not-found, so ownership is checked after the
// row is read.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.numero_commande,
			c.customer_id,
			c.menu_id,
			m.titre,
			c.adresse_prestation,
			c.date_prestation,
			c.heure_prestation,
			c.nb_personne,
			c.prix_commande,
			c.prix_livraison,
			c.prix_total,
			c.statut,
			c.restitution_materiel,
			c.date_commande,
			c.annulation_mode_contact,
			c.annulation_motif,
			c.annulee_at,
			c.retour_materiel_at
		FROM commande c
		JOIN menu m ON m.id = c.menu_id
		WHERE c.id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderResponse(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("commande_id", query.OrderID())
		}
		return nil, err
	}

	actor := query.Actor()
	if !actor.IsStaff() && !actor.Owns(resp.CustomerID) {
		return nil, errs.NewAuthorizationError("not allowed to view this order")
	}

	return resp, nil
}

// scanOrderResponse maps one commande row onto the read model. The scan
// callback abstracts over sql.Row and sql.Rows.
func scanOrderResponse(scan func(dest ...any) error) (*OrderResponse, error) {
	var (
		resp        OrderResponse
		id          uuid.UUID
		customerID  uuid.NullUUID
		menuID      uuid.UUID
		prixCmd     decimal.Decimal
		prixLivr    decimal.Decimal
		prixTotal   decimal.Decimal
		statut      string
		restitution sql.NullBool
		modeContact sql.NullString
		motif       sql.NullString
		annuleeAt   sql.NullTime
		retourAt    sql.NullTime
	)

	err := scan(
		&id,
		&resp.NumeroCommande,
		&customerID,
		&menuID,
		&resp.MenuTitre,
		&resp.AdressePrestation,
		&resp.DatePrestation,
		&resp.HeurePrestation,
		&resp.NbPersonne,
		&prixCmd,
		&prixLivr,
		&prixTotal,
		&statut,
		&restitution,
		&resp.DateCommande,
		&modeContact,
		&motif,
		&annuleeAt,
		&retourAt,
	)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.ID = orderID

	if customerID.Valid {
		ownerID, idErr := kernel.UUIDFromBytes(customerID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CustomerID = &ownerID
	}

	bookedMenuID, err := kernel.UUIDFromBytes(menuID[:])
	if err != nil {
		return nil, err
	}
	resp.MenuID = bookedMenuID

	parsedStatut, err := order.StatusFromString(statut)
	if err != nil {
		return nil, err
	}
	resp.Statut = parsedStatut.String()
	resp.StatutLabel = parsedStatut.Label()

	resp.PrixCommande = prixCmd
	resp.PrixLivraison = prixLivr
	resp.PrixTotal = prixTotal

	if restitution.Valid {
		resp.RestitutionMateriel = &restitution.Bool
	}
	if modeContact.Valid {
		resp.AnnulationModeContact = &modeContact.String
	}
	if motif.Valid {
		resp.AnnulationMotif = &motif.String
	}
	if annuleeAt.Valid {
		resp.AnnuleeAt = &annuleeAt.Time
	}
	if retourAt.Valid {
		resp.RetourMaterielAt = &retourAt.Time
	}

	return &resp, nil
}
