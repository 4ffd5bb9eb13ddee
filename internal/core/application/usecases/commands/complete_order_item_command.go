package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrCompleteOrderItemCommandIsNotConstructed = errors.New(
	"CompleteOrderItemCommand must be created via NewCompleteOrderItemCommand constructor",
)

// CompleteOrderItemCommand marks a dispatched item as finished by the station.
// Completion is the terminal state of the lifecycle.
type CompleteOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderItemCommand creates a command to complete an order item.
func NewCompleteOrderItemCommand(orderItemID kernel.UUID) (CompleteOrderItemCommand, error) {
	cmd := CompleteOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderItemID(orderItemID); err != nil {
		return CompleteOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderItemCommandIsNotConstructed)
}

// OrderItemID returns the target item's identifier.
func (c CompleteOrderItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

func (c *CompleteOrderItemCommand) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderItemID = id
	return nil
}
