package commands

import (
	"context"
	"log/slog"
	"time"

	"traiteur/internal/core/ports"
	"traiteur/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels or refuses an order and compensates its
// side effects: the contact evidence, the terminal status and the stock
// release are committed in one transaction, so stock is never released
// without the status change or vice versa.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancellation/refusal.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
//
// The menu row is locked for the stock release, mirroring creation. The
// customer notification runs after commit and its failure is only logged.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsStaff() {
		return errs.NewAuthorizationError("only staff may cancel or refuse an order")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(cmd.Kind(), cmd.ModeContact(), cmd.Motif(), time.Now()); err != nil {
		return err
	}

	bookedMenu, err := uow.MenuRepository().GetForUpdate(ctx, aggregate.MenuID())
	if err != nil {
		return err
	}

	bookedMenu.Release(aggregate.NbPersonne())

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.MenuRepository().Update(ctx, bookedMenu); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.OrderClosed(ctx, aggregate); err != nil {
		h.logger.WarnContext(ctx, "cancellation notification failed",
			"numero_commande", aggregate.Numero(), "error", err)
	}

	return nil
}
