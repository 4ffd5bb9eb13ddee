package commands

import (
	"context"
	"log/slog"

	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"
)

// SendItemNowCommandHandler performs the manual "fire now" dispatch. It takes
// the same per-record lock as the sweeper, so when both race over one item
// exactly one of them performs the transition and the other observes a
// locked item.
type SendItemNowCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.PrepStationNotifier
	logger     *slog.Logger
}

// NewSendItemNowCommandHandler creates a handler for immediate dispatch.
func NewSendItemNowCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	notifier ports.PrepStationNotifier,
	logger *slog.Logger,
) SendItemNowCommandHandler {
	return SendItemNowCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle dispatches the item immediately. When the item is already locked the
// call succeeds without changing anything and returns the item as stored, so
// the caller cannot tell who dispatched it first, only that it is dispatched.
// The preparation stations are notified only when this call performed the
// transition, after it has been committed.
func (h SendItemNowCommandHandler) Handle(ctx context.Context, cmd SendItemNowCommand) (*orderitem.OrderItem, error) {
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

	if item.IsLocked() {
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return item, nil
	}

	if err = item.Dispatch(h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.notifier.NotifyDispatched(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "prep station notification failed",
			"orderItemId", item.ID().String(), "error", err)
	}

	return item, nil
}
