package ports

import (
	"context"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInRetourMateriel retrieves all orders waiting for their loaned
	// equipment to come back. Used by the return-reminder job.
	GetAllInRetourMateriel(ctx context.Context) ([]*order.Order, error)
}
