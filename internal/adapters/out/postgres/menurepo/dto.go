// Package menurepo provides data transfer objects and mapping functions for
// menu persistence, including the locked read used during order creation.
package menurepo

import (
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuDTO represents the database structure for persisting menu aggregates.
// quantite_restaurant is nullable: NULL means the stock of that menu is not
// tracked and bookings are never refused for it.
type MenuDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Titre              string    `gorm:"type:varchar(100)"`
	NbPersonneMini     int
	PrixParPersonne    decimal.Decimal `gorm:"type:numeric(5,2)"`
	Description        string          `gorm:"type:text"`
	QuantiteRestaurant *int
	PretMateriel       bool
}

// TableName overrides GORM's default naming convention to use "menu".
func (MenuDTO) TableName() string {
	return "menu"
}

// fromDomain converts a menu domain aggregate to its database representation.
func fromDomain(aggregate *menu.Menu) MenuDTO {
	return MenuDTO{
		ID:                 aggregate.ID().Bytes(),
		Titre:              aggregate.Titre(),
		NbPersonneMini:     aggregate.NbPersonneMini(),
		PrixParPersonne:    aggregate.PrixParPersonne(),
		Description:        aggregate.Description(),
		QuantiteRestaurant: aggregate.QuantiteRestaurant(),
		PretMateriel:       aggregate.PretMateriel(),
	}
}

// toDomain converts a database DTO to a menu domain aggregate.
func toDomain(dto MenuDTO) (*menu.Menu, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return menu.RestoreMenu(
		id,
		dto.Titre,
		dto.NbPersonneMini,
		dto.PrixParPersonne,
		dto.Description,
		dto.QuantiteRestaurant,
		dto.PretMateriel,
	), nil
}
