package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/pkg/guard"
)

var ErrEditOrderItemCommandIsNotConstructed = errors.New(
	"EditOrderItemCommand must be created via NewEditOrderItemCommand constructor",
)

// EditOrderItemCommand represents a partial update to an unlocked order item.
// Nil change fields are left untouched. If the item is in the holding window
// the edit restarts its timer; the unit price is never editable.
type EditOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	changes     orderitem.Changes

	guard guard.ConstructorGuard
}

// NewEditOrderItemCommand creates a command to edit an order item.
// Field-level bounds (quantity, delay) are enforced by the domain.
func NewEditOrderItemCommand(orderItemID kernel.UUID, changes orderitem.Changes) (EditOrderItemCommand, error) {
	cmd := EditOrderItemCommand{
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderItemID(orderItemID); err != nil {
		return EditOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderItemCommandIsNotConstructed)
}

// OrderItemID returns the target item's identifier.
func (c EditOrderItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// Changes returns the partial update to apply.
func (c EditOrderItemCommand) Changes() orderitem.Changes {
	return c.changes
}

func (c *EditOrderItemCommand) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderItemID = id
	return nil
}
