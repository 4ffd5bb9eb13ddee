package commands

import (
	"context"

	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// SendOrderItemsCommandHandler moves all of an order's Draft items into the
// holding window in a single transaction and arms each item's delay timer.
type SendOrderItemsCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

// NewSendOrderItemsCommandHandler creates a handler for the batch send.
func NewSendOrderItemsCommandHandler(uowFactory UoWFactory, clock ports.Clock) SendOrderItemsCommandHandler {
	return SendOrderItemsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle transitions every Draft item under the order to Pending with
// expiry = now + the item's delay, and returns the transitioned items.
// An order with no draft items yields an empty slice, not an error.
//
// The draft query does not lock, so each candidate is re-read under the
// per-record lock before the transition. An item that left Draft in the
// meantime (a concurrent send-now) is skipped like any other non-Draft item.
func (h SendOrderItemsCommandHandler) Handle(ctx context.Context, cmd SendOrderItemsCommand) ([]*orderitem.OrderItem, error) {
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

	drafts, err := repo.GetByOrderAndStatus(ctx, cmd.OrderID(), orderitem.Draft)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	sent := make([]*orderitem.OrderItem, 0, len(drafts))
	for _, candidate := range drafts {
		item, lockErr := repo.GetForUpdate(ctx, candidate.ID())
		if lockErr != nil {
			return nil, lockErr
		}
		if item.Status() != orderitem.Draft {
			continue
		}
		if err = item.Send(now); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, item); err != nil {
			return nil, err
		}
		sent = append(sent, item)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sent, nil
}
