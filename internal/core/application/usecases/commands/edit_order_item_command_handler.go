package commands

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// EditOrderItemCommandHandler handles partial updates to unlocked items.
// The read-modify-write runs under the per-record lock so an edit cannot race
// the sweeper's dispatch of the same item: whichever transaction wins, the
// other observes its committed result.
type EditOrderItemCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewEditOrderItemCommandHandler creates a handler for item edits.
func NewEditOrderItemCommandHandler(uowFactory UoWFactory, clock ports.Clock) EditOrderItemCommandHandler {
	return EditOrderItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle applies the edit. Fails with orderitem.ErrItemIsLocked when the item
// has already been dispatched; restarts the holding-window timer when the
// item is Pending. Returns the updated item.
func (h EditOrderItemCommandHandler) Handle(ctx context.Context, cmd EditOrderItemCommand) (*orderitem.OrderItem, error) {
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

	repo := uow.OrderItemRepository()

	item, err := repo.GetForUpdate(ctx, cmd.OrderItemID())
	if err != nil {
		return nil, err
	}

	if err = item.Edit(cmd.Changes(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
