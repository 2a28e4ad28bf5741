package ports

import (
	"context"

	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/menu"
)

// MenuRepository defines the persistence contract for menu aggregates.
type MenuRepository interface {
	// Add persists a new menu aggregate to storage.
	Add(ctx context.Context, aggregate *menu.Menu) error

	// Update persists changes to an existing menu aggregate.
	Update(ctx context.Context, aggregate *menu.Menu) error

	// Get retrieves a menu by its unique identifier without locking.
	Get(ctx context.Context, id kernel.UUID) (*menu.Menu, error)

	// GetForUpdate retrieves a menu under an exclusive row-level lock held
	// until the surrounding transaction ends. It is the only safe way to
	// read the stock counter before mutating it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*menu.Menu, error)
}
