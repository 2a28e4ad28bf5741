package commands

import (
	"context"
	"log/slog"
	"time"

	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/core/ports"
	"traiteur/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies a staff-requested status transition.
//
// The transition itself is validated by the order aggregate against the single
// transition table; the handler contributes authorization, the menu's
// equipment flag, and the best-effort notification when the order enters
// retour_materiel.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the status change command.
//
// Only staff may change statuses, and annulee is never reachable through this
// operation. Notification failures are logged and swallowed; the transition
// has already been committed by then.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsStaff() {
		return errs.NewAuthorizationError("only staff may change an order's status")
	}
	if cmd.Statut() == order.StatusAnnulee {
		return errs.NewAuthorizationError("annulee is only reachable through the cancellation operation")
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

	bookedMenu, err := uow.MenuRepository().Get(ctx, aggregate.MenuID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.Statut(), bookedMenu.PretMateriel(), time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Statut() == order.StatusRetourMateriel {
		if err = h.notifier.EquipmentReturnRequested(ctx, aggregate); err != nil {
			h.logger.WarnContext(ctx, "equipment return notification failed",
				"numero_commande", aggregate.Numero(), "error", err)
		}
	}

	return nil
}
