package commands

import (
	"context"
	"log/slog"
	"time"

	"traiteur/internal/core/ports"
)

// RemindEquipmentReturnCommandHandler finds orders whose equipment return
// window has elapsed and reminds their customers. Run daily by the scheduler.
type RemindEquipmentReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRemindEquipmentReturnCommandHandler creates a handler for return reminders.
func NewRemindEquipmentReturnCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RemindEquipmentReturnCommandHandler {
	return RemindEquipmentReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the reminder command. Each reminder is best-effort: a
// failed send is logged and the remaining orders are still processed.
func (h *RemindEquipmentReturnCommandHandler) Handle(ctx context.Context, cmd RemindEquipmentReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregates, err := uow.OrderRepository().GetAllInRetourMateriel(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	now := time.Now()

	for _, aggregate := range aggregates {
		if !aggregate.EquipmentReturnOverdue(now) {
			continue
		}

		if err = h.notifier.EquipmentReturnOverdue(ctx, aggregate); err != nil {
			h.logger.WarnContext(ctx, "equipment return reminder failed",
				"numero_commande", aggregate.Numero(), "error", err)
		}
	}

	return nil
}
