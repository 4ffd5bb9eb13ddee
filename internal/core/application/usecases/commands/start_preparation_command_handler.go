package commands

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// StartPreparationCommandHandler stamps the moment a station began preparing
// a dispatched item.
type StartPreparationCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewStartPreparationCommandHandler creates a handler for the start stamp.
func NewStartPreparationCommandHandler(uowFactory UoWFactory, clock ports.Clock) StartPreparationCommandHandler {
	return StartPreparationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle records the preparation start time on a dispatched item. The stamp is
// written once; repeated calls keep the first time.
func (h StartPreparationCommandHandler) Handle(ctx context.Context, cmd StartPreparationCommand) (*orderitem.OrderItem, error) {
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

	if err = item.StartPreparation(h.clock.Now()); err != nil {
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
