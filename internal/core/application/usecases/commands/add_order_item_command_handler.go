package commands

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
)

// AddOrderItemCommandHandler handles the creation of new order items.
// New items start in Draft status with no timer armed and are invisible to
// the preparation stations until sent.
type AddOrderItemCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddOrderItemCommandHandler creates a handler for item creation.
func NewAddOrderItemCommandHandler(uowFactory UoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the item in Draft status and persists it.
// Returns the created item, or an error if validation or persistence fails.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (*orderitem.OrderItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := orderitem.NewOrderItem(
		cmd.OrderItemID(),
		cmd.OrderID(),
		cmd.MenuItemID(),
		cmd.Quantity(),
		cmd.UnitPrice(),
		cmd.Instructions(),
		cmd.DelaySeconds(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderItemRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
