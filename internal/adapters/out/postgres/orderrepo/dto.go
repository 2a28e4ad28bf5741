// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and the commande table.
package orderrepo

import (
	"time"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Column names follow the commande table of the backoffice
// database, prices are stored as numeric(5,2).
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NumeroCommande        string     `gorm:"type:varchar(40);uniqueIndex"`
	CustomerID            *uuid.UUID `gorm:"type:uuid;index"`
	MenuID                uuid.UUID  `gorm:"type:uuid;index"`
	AdressePrestation     string     `gorm:"type:varchar(255)"`
	DatePrestation        time.Time  `gorm:"type:date"`
	HeurePrestation       string     `gorm:"type:varchar(5)"`
	NbPersonne            int
	PrixCommande          decimal.Decimal `gorm:"type:numeric(5,2)"`
	PrixLivraison         decimal.Decimal `gorm:"type:numeric(5,2)"`
	PrixTotal             decimal.Decimal `gorm:"type:numeric(5,2)"`
	Statut                string          `gorm:"type:varchar(20);index"`
	RestitutionMateriel   *bool
	DateCommande          time.Time
	AnnulationModeContact *string `gorm:"type:varchar(10)"`
	AnnulationMotif       *string `gorm:"type:text"`
	AnnuleeAt             *time.Time
	RetourMaterielAt      *time.Time
}

// TableName overrides GORM's default naming convention to use "commande".
func (OrderDTO) TableName() string {
	return "commande"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	var modeContact *string
	if mode := aggregate.AnnulationModeContact(); mode != nil {
		raw := string(*mode)
		modeContact = &raw
	}

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		NumeroCommande:        aggregate.Numero(),
		CustomerID:            customerID,
		MenuID:                aggregate.MenuID().Bytes(),
		AdressePrestation:     aggregate.AdressePrestation(),
		DatePrestation:        aggregate.DatePrestation(),
		HeurePrestation:       aggregate.HeurePrestation(),
		NbPersonne:            aggregate.NbPersonne(),
		PrixCommande:          aggregate.PrixCommande(),
		PrixLivraison:         aggregate.PrixLivraison(),
		PrixTotal:             aggregate.PrixTotal(),
		Statut:                aggregate.Statut().String(),
		RestitutionMateriel:   aggregate.RestitutionMateriel(),
		DateCommande:          aggregate.DateCommande(),
		AnnulationModeContact: modeContact,
		AnnulationMotif:       aggregate.AnnulationMotif(),
		AnnuleeAt:             aggregate.AnnuleeAt(),
		RetourMaterielAt:      aggregate.RetourMaterielAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	menuID, err := kernel.UUIDFromBytes(dto.MenuID[:])
	if err != nil {
		return nil, err
	}

	statut, err := order.StatusFromString(dto.Statut)
	if err != nil {
		return nil, err
	}

	var modeContact *order.ContactMode
	if dto.AnnulationModeContact != nil {
		mode := order.ContactMode(*dto.AnnulationModeContact)
		if modeErr := mode.Validate(); modeErr != nil {
			return nil, modeErr
		}
		modeContact = &mode
	}

	return order.RestoreOrder(
		id,
		dto.NumeroCommande,
		customerID,
		menuID,
		dto.AdressePrestation,
		dto.DatePrestation,
		dto.HeurePrestation,
		dto.NbPersonne,
		dto.PrixCommande,
		dto.PrixLivraison,
		dto.PrixTotal,
		statut,
		dto.RestitutionMateriel,
		dto.DateCommande,
		modeContact,
		dto.AnnulationMotif,
		dto.AnnuleeAt,
		dto.RetourMaterielAt,
	), nil
}
