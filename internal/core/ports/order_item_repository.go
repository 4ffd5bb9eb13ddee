// Package ports defines the contracts between the core and its adapters:
// persistence, time, and outbound notification. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
)

// OrderItemRepository defines the persistence contract for order item
// aggregates. It is the only way the core reads or writes items; the
// surrounding system owns every other table.
type OrderItemRepository interface {
	// Add persists a new order item. The item must be valid and not already
	// exist in the repository.
	Add(ctx context.Context, aggregate *orderitem.OrderItem) error

	// Update persists changes to an existing order item.
	// Returns errs.ObjectNotFoundError when the item does not exist.
	Update(ctx context.Context, aggregate *orderitem.OrderItem) error

	// Get retrieves an order item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error)

	// GetForUpdate retrieves an order item and takes the per-record write
	// lock for the duration of the surrounding unit of work. Every
	// read-modify-write on an item must go through this method so that a
	// concurrent edit, manual dispatch and sweep of the same item serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error)

	// Remove deletes an order item. Callers enforce the unlocked rule first;
	// the repository only reports missing rows.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetByOrderAndStatus retrieves all items of one order in the given
	// status. Used by the batch send operation to collect draft items.
	GetByOrderAndStatus(ctx context.Context, orderID kernel.UUID, status orderitem.Status) ([]*orderitem.OrderItem, error)

	// GetExpiredUnlocked retrieves all pending, unlocked items whose
	// holding-window timer elapsed at or before now. The predicate must be
	// evaluated by the store itself, not approximated in application memory,
	// so it reflects the latest committed state. This is the single query
	// the expiry sweeper depends on.
	GetExpiredUnlocked(ctx context.Context, now time.Time) ([]*orderitem.OrderItem, error)
}
