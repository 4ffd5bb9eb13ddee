package commands

import (
	"context"
)

// RemoveOrderItemCommandHandler deletes unlocked items. The lock check and the
// delete run under the per-record lock, so a sweep dispatching the item at the
// same moment either sees it gone or locks it first and makes the removal
// fail with orderitem.ErrItemIsLocked.
type RemoveOrderItemCommandHandler struct {
	uowFactory UoWFactory
}

// NewRemoveOrderItemCommandHandler creates a handler for item removal.
func NewRemoveOrderItemCommandHandler(uowFactory UoWFactory) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the item if it is still unlocked.
func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderItemRepository()

	item, err := repo.GetForUpdate(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}

	if err = item.EnsureDeletable(); err != nil {
		return err
	}

	if err = repo.Remove(ctx, item.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
