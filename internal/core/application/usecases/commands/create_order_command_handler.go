package commands

import (
	"context"
	"time"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/core/domain/services"
)

// CreateOrderCommandHandler handles order creation under stock contention.
//
// The whole check-then-decrement sequence runs inside one transaction with an
// exclusive row lock on the menu, so concurrent creations against the same
// menu serialize and the stock counter can never go negative. Any failure
// rolls the transaction back: no partial stock decrement, no orphaned order.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory spanning the order and menu aggregates.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
//
// Inside the transaction: lock and re-read the menu, admit or reject against
// the stock counter, price the order, persist it in en_attente status and
// decrement the stock. The notifier is never involved in creation.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookedMenu, err := uow.MenuRepository().GetForUpdate(ctx, cmd.MenuID())
	if err != nil {
		return nil, err
	}

	if err = bookedMenu.Reserve(cmd.NbPersonne()); err != nil {
		return nil, err
	}

	subtotal, total := services.ComputeTotals(
		bookedMenu.PrixParPersonne(),
		cmd.NbPersonne(),
		cmd.PrixLivraison(),
	)

	created, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewNumero(),
		cmd.CustomerID(),
		cmd.MenuID(),
		cmd.AdressePrestation(),
		cmd.DatePrestation(),
		cmd.HeurePrestation(),
		cmd.NbPersonne(),
		subtotal,
		cmd.PrixLivraison(),
		total,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.MenuRepository().Update(ctx, bookedMenu); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
