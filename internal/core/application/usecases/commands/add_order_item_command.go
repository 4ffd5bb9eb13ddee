package commands

import (
	"errors"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand represents a request to put a new line item on an open
// order. The unit price is captured here and never changes afterwards, so a
// later menu price change cannot retroactively alter the item.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderItemID  kernel.UUID
	orderID      kernel.UUID
	menuItemID   kernel.UUID
	quantity     int
	unitPrice    kernel.Price
	instructions string
	delaySeconds int

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add an item to an order.
// Quantity and delay bounds are enforced by the domain constructor; this
// validates the identifiers and the price.
func NewAddOrderItemCommand(
	orderItemID kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Price,
	instructions string,
	delaySeconds int,
) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		quantity:     quantity,
		instructions: instructions,
		delaySeconds: delaySeconds,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderItemID(orderItemID),
		cmd.setOrderID(orderID),
		cmd.setMenuItemID(menuItemID),
		cmd.setUnitPrice(unitPrice),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderItemID returns the identifier assigned to the new item.
func (c AddOrderItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// OrderID returns the owning order's identifier.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MenuItemID returns the referenced menu item's identifier.
func (c AddOrderItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns the requested number of units.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the captured price per unit.
func (c AddOrderItemCommand) UnitPrice() kernel.Price {
	return c.unitPrice
}

// Instructions returns the optional special instructions.
func (c AddOrderItemCommand) Instructions() string {
	return c.instructions
}

// DelaySeconds returns the holding-window length for this item.
func (c AddOrderItemCommand) DelaySeconds() int {
	return c.delaySeconds
}

func (c *AddOrderItemCommand) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderItemID = id
	return nil
}

func (c *AddOrderItemCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AddOrderItemCommand) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.menuItemID = id
	return nil
}

func (c *AddOrderItemCommand) setUnitPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.unitPrice = price
	return nil
}
