package ports

import (
	"context"

	"traiteur/internal/core/domain/model/order"
)

// Notifier sends transactional messages to the customer of an order.
//
// Every call is best-effort: callers log failures and carry on, a broken
// notifier must never fail a business operation. Implementations must not be
// invoked while a database transaction or row lock is held.
type Notifier interface {
	// OrderClosed notifies the customer that the order was cancelled or
	// refused, with the recorded contact evidence.
	OrderClosed(ctx context.Context, aggregate *order.Order) error

	// EquipmentReturnRequested notifies the customer of the return window and
	// the penalty policy when the order enters retour_materiel.
	EquipmentReturnRequested(ctx context.Context, aggregate *order.Order) error

	// EquipmentReturnOverdue reminds the customer that the return window has
	// elapsed and the penalty applies.
	EquipmentReturnOverdue(ctx context.Context, aggregate *order.Order) error
}
