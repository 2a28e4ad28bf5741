package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler lists orders from the database with filters and
// keyset-free offset pagination. The listing is small enough for OFFSET to
// stay cheap.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewSearchOrdersQueryHandler creates a handler for order listings.
func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// Handle executes the listing. Non-staff actors are always scoped to their
// own orders, whatever customer filter the request carried.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (*SearchOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filters := query.Filters()
	actor := query.Actor()

	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if !actor.IsStaff() {
		where = append(where, "c.customer_id = ?")
		args = append(args, actor.ID().Bytes())
	} else if filters.CustomerID != nil {
		where = append(where, "c.customer_id = ?")
		args = append(args, filters.CustomerID.Bytes())
	}

	if filters.Statut != nil {
		where = append(where, "c.statut = ?")
		args = append(args, filters.Statut.String())
	}

	if filters.Terme != "" {
		where = append(where, "(c.numero_commande ILIKE ? OR c.adresse_prestation ILIKE ?)")
		pattern := "%" + filters.Terme + "%"
		args = append(args, pattern, pattern)
	}

	if filters.DatePrestation != nil {
		where = append(where, "c.date_prestation = ?")
		args = append(args, filters.DatePrestation.Format("2006-01-02"))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM commande c "+whereClause, args...,
	).Scan(&total).Error
	if err != nil {
		return nil, err
	}

	offset := (query.Page() - 1) * query.Limit()
	pageArgs := append(args, query.Limit(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
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
		`+whereClause+`
		ORDER BY c.date_commande DESC, c.id
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderResponse, 0, query.Limit())
	for rows.Next() {
		resp, scanErr := scanOrderResponse(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, *resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &SearchOrdersResponse{
		Items: items,
		Total: total,
		Page:  query.Page(),
		Limit: query.Limit(),
	}, nil
}
