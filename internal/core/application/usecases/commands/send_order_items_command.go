package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrSendOrderItemsCommandIsNotConstructed = errors.New(
	"SendOrderItemsCommand must be created via NewSendOrderItemsCommand constructor",
)

// SendOrderItemsCommand represents the "Send" button on the order screen:
// every Draft item under the order enters the holding window and its delay
// timer starts. Items already sent, dispatched or completed are skipped
// silently, since an order commonly mixes fresh and already-sent items.
type SendOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendOrderItemsCommand creates a command to send an order's draft items.
func NewSendOrderItemsCommand(orderID kernel.UUID) (SendOrderItemsCommand, error) {
	cmd := SendOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return SendOrderItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderItemsCommandIsNotConstructed)
}

// OrderID returns the order whose draft items are being sent.
func (c SendOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *SendOrderItemsCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
