package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrSendItemNowCommandIsNotConstructed = errors.New(
	"SendItemNowCommand must be created via NewSendItemNowCommand constructor",
)

// SendItemNowCommand fires a single item to the preparation stations
// immediately, bypassing whatever remains of its holding window. Works from
// Draft (skipping the window entirely) and from Pending (cutting it short).
// On an already-locked item it is a no-op rather than an error, because the
// sweeper may have dispatched the item between the user seeing it and
// pressing the button.
type SendItemNowCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendItemNowCommand creates a command to dispatch one item immediately.
func NewSendItemNowCommand(orderItemID kernel.UUID) (SendItemNowCommand, error) {
	cmd := SendItemNowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderItemID(orderItemID); err != nil {
		return SendItemNowCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendItemNowCommand) Validate() error {
	return c.guard.Validate(ErrSendItemNowCommandIsNotConstructed)
}

// OrderItemID returns the target item's identifier.
func (c SendItemNowCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

func (c *SendItemNowCommand) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderItemID = id
	return nil
}
