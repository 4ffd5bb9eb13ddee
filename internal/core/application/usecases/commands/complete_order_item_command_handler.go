package commands

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// CompleteOrderItemCommandHandler finishes dispatched items.
type CompleteOrderItemCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewCompleteOrderItemCommandHandler creates a handler for item completion.
func NewCompleteOrderItemCommandHandler(uowFactory UoWFactory, clock ports.Clock) CompleteOrderItemCommandHandler {
	return CompleteOrderItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle moves a dispatched item to Completed and stamps the completion time.
func (h CompleteOrderItemCommandHandler) Handle(ctx context.Context, cmd CompleteOrderItemCommand) (*orderitem.OrderItem, error) {
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

	if err = item.Complete(h.clock.Now()); err != nil {
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
