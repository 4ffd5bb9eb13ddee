package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand deletes an item that has not reached the kitchen.
// Draft and Pending items may be removed; once an item is dispatched the
// stations are already working on it, so removal is refused.
type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderItemCommand creates a command to remove an order item.
func NewRemoveOrderItemCommand(orderItemID kernel.UUID) (RemoveOrderItemCommand, error) {
	cmd := RemoveOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderItemID(orderItemID); err != nil {
		return RemoveOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

// OrderItemID returns the target item's identifier.
func (c RemoveOrderItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

func (c *RemoveOrderItemCommand) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderItemID = id
	return nil
}
