package commands

import (
	"errors"

	"notapos/internal/pkg/guard"
)

var ErrDispatchExpiredItemsCommandIsNotConstructed = errors.New(
	"DispatchExpiredItemsCommand must be created via NewDispatchExpiredItemsCommand constructor",
)

// DispatchExpiredItemsCommand is the sweep the background job runs on every
// tick: find all pending items whose holding window elapsed and dispatch them.
type DispatchExpiredItemsCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchExpiredItemsCommand creates a sweep command.
func NewDispatchExpiredItemsCommand() (DispatchExpiredItemsCommand, error) {
	return DispatchExpiredItemsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchExpiredItemsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchExpiredItemsCommandIsNotConstructed)
}
