package memory

import (
	"context"
	"sort"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/pkg/errs"
)

// Repository implements ports.OrderItemRepository over the in-process store.
// All methods must be called between Begin and Commit/Rollback of the owning
// unit of work; the store mutex held by the unit of work stands in for the
// row lock of the Postgres adapter, so GetForUpdate is plain Get here.
type Repository struct {
	uow *UnitOfWork
}

// Add persists a new order item.
func (r *Repository) Add(_ context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.uow.staged[aggregate.ID()] = snapshot(aggregate)
	delete(r.uow.removed, aggregate.ID())
	return nil
}

// Update persists changes to an existing order item.
func (r *Repository) Update(_ context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("orderItem", aggregate.ID().String())
	}

	r.uow.staged[aggregate.ID()] = snapshot(aggregate)
	return nil
}

// Get retrieves an order item by its identifier.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	record, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderItem", id.String())
	}

	return record.toDomain()
}

// GetForUpdate retrieves an order item under the unit of work's exclusion.
// The store mutex is already held for the whole unit of work, so this is
// equivalent to Get.
func (r *Repository) GetForUpdate(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	return r.Get(ctx, id)
}

// Remove deletes an order item.
func (r *Repository) Remove(_ context.Context, id kernel.UUID) error {
	if _, ok := r.lookup(id); !ok {
		return errs.NewObjectNotFoundError("orderItem", id.String())
	}

	delete(r.uow.staged, id)
	r.uow.removed[id] = struct{}{}
	return nil
}

// GetByOrderAndStatus retrieves all items of one order in the given status.
func (r *Repository) GetByOrderAndStatus(
	_ context.Context, orderID kernel.UUID, status orderitem.Status,
) ([]*orderitem.OrderItem, error) {
	return r.collect(func(record itemRecord) bool {
		return record.orderID.IsEqual(orderID) && record.status == status
	})
}

// GetExpiredUnlocked retrieves all pending items whose holding-window timer
// elapsed at or before now. The predicate is evaluated against the committed
// records, mirroring the server-side query of the Postgres adapter.
func (r *Repository) GetExpiredUnlocked(_ context.Context, now time.Time) ([]*orderitem.OrderItem, error) {
	items, err := r.collect(func(record itemRecord) bool {
		return record.status == orderitem.Pending &&
			record.expiresAt != nil && !record.expiresAt.After(now)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].ExpiresAt().Before(*items[b].ExpiresAt())
	})
	return items, nil
}

func (r *Repository) lookup(id kernel.UUID) (itemRecord, bool) {
	if _, gone := r.uow.removed[id]; gone {
		return itemRecord{}, false
	}
	if record, ok := r.uow.staged[id]; ok {
		return record, true
	}
	record, ok := r.uow.store.items[id]
	return record, ok
}

func (r *Repository) collect(match func(itemRecord) bool) ([]*orderitem.OrderItem, error) {
	items := make([]*orderitem.OrderItem, 0)

	consider := func(record itemRecord) error {
		if !match(record) {
			return nil
		}
		item, err := record.toDomain()
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	}

	for _, record := range r.uow.staged {
		if err := consider(record); err != nil {
			return nil, err
		}
	}
	for id, record := range r.uow.store.items {
		if _, gone := r.uow.removed[id]; gone {
			continue
		}
		if _, shadowed := r.uow.staged[id]; shadowed {
			continue
		}
		if err := consider(record); err != nil {
			return nil, err
		}
	}

	return items, nil
}
