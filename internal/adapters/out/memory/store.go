// Package memory provides an in-process implementation of the unit of work and
// order item repository, backed by a mutex-guarded map. It is the reference
// store for engine and sweep tests: one store-wide mutex held for the duration
// of each unit of work gives the same single-writer-per-record guarantee that
// the Postgres adapter gets from row locks, without a database.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when no unit of
// work is in progress. Handlers defer Rollback unconditionally and ignore this
// on the success path.
var ErrNoActiveTransaction = errors.New("no active transaction")

// itemRecord is the persisted form of one order item. Records are value
// snapshots; aggregates are rebuilt on every read so no caller can mutate the
// store through a shared pointer.
type itemRecord struct {
	id           kernel.UUID
	orderID      kernel.UUID
	menuItemID   kernel.UUID
	quantity     int
	unitPrice    kernel.Price
	instructions string
	delaySeconds int
	status       orderitem.Status
	expiresAt    *time.Time
	startedAt    *time.Time
	dispatchedAt *time.Time
	completedAt  *time.Time
}

func snapshot(item *orderitem.OrderItem) itemRecord {
	return itemRecord{
		id:           item.ID(),
		orderID:      item.OrderID(),
		menuItemID:   item.MenuItemID(),
		quantity:     item.Quantity(),
		unitPrice:    item.UnitPrice(),
		instructions: item.Instructions(),
		delaySeconds: item.DelaySeconds(),
		status:       item.Status(),
		expiresAt:    copyTime(item.ExpiresAt()),
		startedAt:    copyTime(item.StartedAt()),
		dispatchedAt: copyTime(item.DispatchedAt()),
		completedAt:  copyTime(item.CompletedAt()),
	}
}

func (r itemRecord) toDomain() (*orderitem.OrderItem, error) {
	return orderitem.RestoreOrderItem(
		r.id, r.orderID, r.menuItemID,
		r.quantity, r.unitPrice, r.instructions, r.delaySeconds,
		r.status,
		copyTime(r.expiresAt), copyTime(r.startedAt),
		copyTime(r.dispatchedAt), copyTime(r.completedAt),
	)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Store holds all order item records behind one mutex. The mutex is acquired
// by UnitOfWork.Begin and released on Commit or Rollback, so units of work
// over the store execute strictly one at a time.
type Store struct {
	mu    sync.Mutex
	items map[kernel.UUID]itemRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[kernel.UUID]itemRecord),
	}
}

// UnitOfWorkFactory creates units of work over one shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes and applies them to the store on Commit. Reads
// inside the unit of work observe its own buffered writes. Instances are not
// safe for concurrent use; create one per operation.
type UnitOfWork struct {
	store   *Store
	active  bool
	staged  map[kernel.UUID]itemRecord
	removed map[kernel.UUID]struct{}
}

// Begin locks the store for this unit of work. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.staged = make(map[kernel.UUID]itemRecord)
	uow.removed = make(map[kernel.UUID]struct{})
	return nil
}

// Commit applies the buffered writes and releases the store lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	for id, record := range uow.staged {
		uow.store.items[id] = record
	}
	for id := range uow.removed {
		delete(uow.store.items, id)
	}

	uow.finish()
	return nil
}

// Rollback discards the buffered writes and releases the store lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.finish()
	return nil
}

func (uow *UnitOfWork) finish() {
	uow.active = false
	uow.staged = nil
	uow.removed = nil
	uow.store.mu.Unlock()
}

// OrderItemRepository returns a repository bound to this unit of work.
func (uow *UnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return &Repository{uow: uow}
}
