package commands

import (
	"context"
	"log/slog"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/ports"
)

// DispatchExpiredItemsCommandHandler implements the expiry sweep. It selects
// the expired candidates in one store-evaluated query, then dispatches each
// one in its own transaction under the per-record lock, re-checking the
// expiry condition after the lock is held. An item whose timer was reset or
// which was dispatched between the query and the lock is skipped. A failure
// on one item is logged and never stops the rest of the sweep.
type DispatchExpiredItemsCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.PrepStationNotifier
	logger     *slog.Logger
}

// NewDispatchExpiredItemsCommandHandler creates a handler for the expiry sweep.
func NewDispatchExpiredItemsCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	notifier ports.PrepStationNotifier,
	logger *slog.Logger,
) DispatchExpiredItemsCommandHandler {
	return DispatchExpiredItemsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle dispatches every item whose holding window has elapsed and returns
// the number of items this sweep transitioned.
func (h DispatchExpiredItemsCommandHandler) Handle(ctx context.Context, cmd DispatchExpiredItemsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.findCandidates(ctx)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, id := range candidates {
		ok, dispatchErr := h.dispatchOne(ctx, id)
		if dispatchErr != nil {
			h.logger.ErrorContext(ctx, "expiry sweep: dispatch failed",
				"orderItemId", id.String(), "error", dispatchErr)
			continue
		}
		if ok {
			dispatched++
		}
	}

	return dispatched, nil
}

// findCandidates runs the store-side expiry query in a read-only unit of work
// and returns only identifiers. Each candidate is re-read under its own lock
// before any state changes, so holding the candidate rows here would only
// widen the lock footprint for no benefit.
func (h DispatchExpiredItemsCommandHandler) findCandidates(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderItemRepository().GetExpiredUnlocked(ctx, h.clock.Now())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(expired))
	for _, item := range expired {
		ids = append(ids, item.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

// dispatchOne locks a single candidate, re-checks that its window is still
// elapsed and the item still unlocked, and performs the dispatch. Reports
// whether this call transitioned the item.
func (h DispatchExpiredItemsCommandHandler) dispatchOne(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderItemRepository()

	item, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	now := h.clock.Now()
	if item.IsLocked() || !item.IsExpired(now) {
		return false, nil
	}

	if err = item.Dispatch(now); err != nil {
		return false, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if err = h.notifier.NotifyDispatched(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "prep station notification failed",
			"orderItemId", item.ID().String(), "error", err)
	}

	return true, nil
}
